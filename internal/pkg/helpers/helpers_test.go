package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeFromBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{name: "birthday already passed", birth: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), want: 24},
		{name: "birthday still ahead", birth: time.Date(1995, 5, 20, 0, 0, 0, 0, time.UTC), want: 29},
		{name: "late in the year", birth: time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC), want: 33},
		{name: "same day", birth: now, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeFromBirthDate(tt.birth, now))
		})
	}
}

func TestParseFlexibleDate(t *testing.T) {
	for _, in := range []string{"2000-01-01", "2000-01-01T00:00:00Z", "2000/01/01", "01/01/2000", " 2000-01-01 "} {
		got, ok := ParseFlexibleDate(in)
		require.True(t, ok, in)
		assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), got, in)
	}

	_, ok := ParseFlexibleDate("not-a-date")
	assert.False(t, ok)
	_, ok = ParseFlexibleDate("")
	assert.False(t, ok)

	blank := "  "
	assert.Nil(t, ParseOptionalDate(&blank))
	assert.Nil(t, ParseOptionalDate(nil))
}

func TestNullableHelpers(t *testing.T) {
	assert.Nil(t, NullableString("   "))
	require.NotNil(t, NullableString(" a "))
	assert.Equal(t, "a", *NullableString(" a "))

	assert.Nil(t, NullableInt64("abc"))
	assert.Nil(t, NullableInt64(""))
	require.NotNil(t, NullableInt64(" 12 "))
	assert.Equal(t, int64(12), *NullableInt64(" 12 "))

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, SplitList(" a.jpg, ,b.jpg ,"))
	assert.Equal(t, []string{}, SplitList(""))

	assert.Equal(t, `%50\%\_off%`, LikePattern(" 50%_off "))
	assert.Equal(t, `Uttara\_High`, EscapeLike(" Uttara_High "))
}

func TestPagination(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, uint64(20), limit)

	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(DefaultPageSize), limit)

	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
}

func TestParseSkipTake(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/public/lists", nil)
	skip, take := ParseSkipTake(c)
	assert.Equal(t, uint64(0), skip)
	assert.Equal(t, uint64(DefaultTake), take)

	c.Request = httptest.NewRequest("GET", "/api/public/lists?skip=24&take=500", nil)
	skip, take = ParseSkipTake(c)
	assert.Equal(t, uint64(24), skip)
	assert.Equal(t, uint64(MaxPageSize), take)
}
