package helpers

import (
	"strconv"
	"strings"
)

// NullableString trims s and returns nil when nothing is left
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// NullableStringPtr applies NullableString through a pointer
func NullableStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return NullableString(*s)
}

// NullableInt64 parses a decimal integer, returning nil for blank or invalid input
func NullableInt64(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// SplitList splits a comma separated value, trimming pieces and dropping empty ones
func SplitList(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the ILIKE wildcard characters in term so it matches literally
func EscapeLike(term string) string {
	return likeEscaper.Replace(strings.TrimSpace(term))
}

// LikePattern wraps a search term for a substring ILIKE match
func LikePattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}
