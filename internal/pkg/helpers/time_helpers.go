package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayouts are the date formats accepted from forms and CSV files, tried in order
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseFlexibleDate tries each of DateLayouts and returns the first match in UTC
func ParseFlexibleDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseOptionalDate returns nil when value is nil, blank or unparsable
func ParseOptionalDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, ok := ParseFlexibleDate(*value)
	if !ok {
		return nil
	}
	return &t
}

// AgeFromBirthDate measures the elapsed time since birth as an offset from the Unix epoch
// and returns how many calendar years that offset spans. The result ignores whether the
// birthday has already passed this year.
func AgeFromBirthDate(birth, now time.Time) int {
	elapsed := time.Unix(0, 0).UTC().Add(now.Sub(birth))
	years := elapsed.Year() - 1970
	if years < 0 {
		return -years
	}
	return years
}
