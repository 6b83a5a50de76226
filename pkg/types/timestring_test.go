package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, invalid := range []string{"25:00", "9:3", "09:60", "abc", ""} {
		_, err := NewTimeStringFromString(invalid)
		assert.Error(t, err, "input %q", invalid)
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2025, 11, 12, 14, 5, 33, 0, time.Local)
	assert.Equal(t, TimeString("14:05"), NewTimeString(moment))
}

func TestMinutes(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 10*60+45, minutes)
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	end, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), end)

	// Конец интервала ровно в полночь допустим
	late := TimeString("23:30")
	end, err = late.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = late.AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestLexicographicOrderIsChronological(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:30")))
	assert.True(t, TimeString("10:30").IsAfter(TimeString("10:29")))
	assert.False(t, TimeString("10:30").IsBefore(TimeString("10:30")))

	// "24:00" сортируется после любого реального времени
	assert.True(t, TimeString("23:59").IsBefore(TimeString("24:00")))
}

func TestScan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(12345))
}
