package utils

import (
	"errors"
	"fmt"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
)

var weekDayNames = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

func validDayName(name string) bool {
	for _, n := range weekDayNames {
		if n == name {
			return true
		}
	}
	return false
}

// ValidateRosterRequest checks wire-level shape before any conversion: day
// names, clock strings, quantities, and the preferred order length.
func ValidateRosterRequest(req *domain.RosterRequest) error {
	if 40%req.ShiftLength != 0 {
		return fmt.Errorf("shift length %d does not divide a 40 hour week", req.ShiftLength)
	}

	total := 0
	for name, shifts := range req.DailyShifts {
		if !validDayName(name) {
			return fmt.Errorf("unknown day name %q", name)
		}
		for clock, quantity := range shifts {
			if _, err := MilitaryToHour(clock); err != nil {
				return err
			}
			if quantity < 0 {
				return fmt.Errorf("negative quantity for %s on %s", clock, name)
			}
			total += quantity
		}
	}
	if total == 0 {
		return errors.New("daily shifts contain no demand")
	}

	if len(req.PreferredShiftOrder) > 0 && len(req.PreferredShiftOrder) != 40/req.ShiftLength {
		return fmt.Errorf("preferred shift order must hold %d shifts, got %d",
			40/req.ShiftLength, len(req.PreferredShiftOrder))
	}
	for _, clock := range req.PreferredShiftOrder {
		if _, err := MilitaryToHour(clock); err != nil {
			return err
		}
	}

	return nil
}
