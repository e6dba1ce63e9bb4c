package utils

import (
	"fmt"
	"math"
	"strconv"
)

// MilitaryToHour converts a four digit clock string like "0730" into
// fractional hours (7.5). Minutes are rounded to two decimals so repeated
// conversions stay stable.
func MilitaryToHour(clock string) (float64, error) {
	if len(clock) != 4 {
		return 0, fmt.Errorf("invalid military time %q: want 4 digits", clock)
	}
	hours, err := strconv.Atoi(clock[:2])
	if err != nil || hours > 23 {
		return 0, fmt.Errorf("invalid military time %q: bad hour", clock)
	}
	minutes, err := strconv.Atoi(clock[2:])
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("invalid military time %q: bad minutes", clock)
	}
	return float64(hours) + math.Round(float64(minutes)/60*100)/100, nil
}

// HourToMilitary converts fractional hours back into the four digit clock
// string, 7.5 becoming "0730".
func HourToMilitary(hour float64) string {
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%02d%02d", h%24, m)
}
