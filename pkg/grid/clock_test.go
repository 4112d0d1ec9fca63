package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock(" 9:05 ")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9, Minute: 5}, c)
	assert.Equal(t, "09:05", c.String())

	c, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, c.Minutes())

	for _, bad := range []string{"", "9", "9:5", "123:00", "09:00:00", "24:00", "12:60", "ab:cd", "9:00am"} {
		_, err := ParseClock(bad)
		var fe *FormatError
		assert.ErrorAs(t, err, &fe, "ParseClock(%q)", bad)
	}
}

func TestClockAddMinutes(t *testing.T) {
	assert.Equal(t, Clock{Hour: 11, Minute: 30}, Clock{Hour: 10}.AddMinutes(90))
	assert.Equal(t, Clock{Hour: 0, Minute: 30}, Clock{Hour: 23, Minute: 30}.AddMinutes(60))
	assert.Equal(t, Clock{Hour: 23, Minute: 45}, Clock{Hour: 0, Minute: 15}.AddMinutes(-30))
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end Clock
	}{
		{"09:00-10:50", Clock{9, 0}, Clock{10, 50}},
		{"Time: 9:00 ~ 10:50", Clock{9, 0}, Clock{10, 50}},
		{"14:00 – 15:50", Clock{14, 0}, Clock{15, 50}},
		{"14:00—15:50", Clock{14, 0}, Clock{15, 50}},
		{"14:00至15:50", Clock{14, 0}, Clock{15, 50}},
		{"8:00-9:00, 10:00-11:00", Clock{8, 0}, Clock{9, 0}},
		{"16:00-15:00", Clock{16, 0}, Clock{15, 0}},
	}

	for _, tt := range tests {
		tr, ok, err := ParseTimeRange(tt.in)
		require.NoError(t, err, tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, TimeRange{Start: tt.start, End: tt.end}, tr, tt.in)
	}
}

func TestParseTimeRangeNotFound(t *testing.T) {
	for _, in := range []string{"", "Dr. Smith", "09:00", "09:00 / 10:00"} {
		_, ok, err := ParseTimeRange(in)
		assert.False(t, ok, in)
		assert.NoError(t, err, in)
	}
}

func TestParseTimeRangeMalformed(t *testing.T) {
	_, ok, err := ParseTimeRange("25:00-26:00")
	assert.True(t, ok)
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestIsTimeLabel(t *testing.T) {
	assert.True(t, IsTimeLabel("09:00"))
	assert.True(t, IsTimeLabel("9:00"))
	assert.False(t, IsTimeLabel("09:00 Lecture"))
	assert.False(t, IsTimeLabel("CPT 101"))
}
