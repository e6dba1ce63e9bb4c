package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilitaryToHour(t *testing.T) {
	cases := []struct {
		clock string
		want  float64
	}{
		{"0000", 0},
		{"0700", 7},
		{"0730", 7.5},
		{"0545", 5.75},
		{"2300", 23},
	}
	for _, c := range cases {
		got, err := MilitaryToHour(c.clock)
		require.NoError(t, err, c.clock)
		assert.Equal(t, c.want, got, c.clock)
	}

	// Minutes that do not divide the hour evenly are kept to two decimals.
	got, err := MilitaryToHour("0720")
	require.NoError(t, err)
	assert.InDelta(t, 7.33, got, 1e-9)
}

func TestMilitaryToHourInvalid(t *testing.T) {
	for _, clock := range []string{"", "730", "07300", "2400", "0760", "ab30", "07x0"} {
		_, err := MilitaryToHour(clock)
		assert.Error(t, err, clock)
	}
}

func TestHourToMilitary(t *testing.T) {
	cases := []struct {
		hour float64
		want string
	}{
		{0, "0000"},
		{7, "0700"},
		{7.5, "0730"},
		{7.33, "0720"},
		{23, "2300"},
		{23.995, "0000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HourToMilitary(c.hour), "%.3f", c.hour)
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"0000", "0545", "0700", "0730", "1500", "2330"} {
		hour, err := MilitaryToHour(clock)
		require.NoError(t, err)
		assert.Equal(t, clock, HourToMilitary(hour))
	}
}
