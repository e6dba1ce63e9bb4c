package roster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
)

var ErrInvalidPreferredOrder = errors.New("preferred shift order violates business rules")

// ValidatePreferredOrder builds a trial week out of the preferred shift order
// padded with days off and runs the full rule check against it, wrap
// included. It runs before any engine work so a bad order is rejected with a
// precise message instead of dooming every attempt.
func ValidatePreferredOrder(req *Request, rules *domain.BusinessRules) error {
	if len(req.PreferredShiftOrder) == 0 {
		return nil
	}
	perWorker := 40 / req.ShiftLength
	if perWorker > 7 {
		return fmt.Errorf("%w: %d shifts do not fit a 7 day week",
			ErrInvalidPreferredOrder, perWorker)
	}
	if len(req.PreferredShiftOrder) != perWorker {
		return fmt.Errorf("%w: expected %d shifts, got %d",
			ErrInvalidPreferredOrder, perWorker, len(req.PreferredShiftOrder))
	}

	var week [7]ShiftValue
	for i := range week {
		week[i] = Off()
	}
	for i, shift := range req.PreferredShiftOrder {
		week[i] = At(shift)
	}

	length := float64(req.ShiftLength)
	consecutive := 0
	for i := 0; i < 7; i++ {
		a, b := week[i], week[(i+1)%7]
		if !SufficientRest(a, b, length, rules) {
			return fmt.Errorf("%w: insufficient rest between positions %d and %d",
				ErrInvalidPreferredOrder, i, (i+1)%7)
		}
		if !DesirableMove(a, b, length) {
			return fmt.Errorf("%w: undesirable move between positions %d and %d",
				ErrInvalidPreferredOrder, i, (i+1)%7)
		}
		if Classify(week[i], length) == TypeMid {
			consecutive++
			if consecutive > rules.MaxConsecutiveMid {
				return fmt.Errorf("%w: more than %d consecutive mid shifts",
					ErrInvalidPreferredOrder, rules.MaxConsecutiveMid)
			}
		} else {
			consecutive = 0
		}
	}
	return nil
}

// CheckLine audits a hand-built week against the business rules and returns
// one message per violation, empty when the line is clean. Desirability is
// reported alongside the hard rules so planners see everything at once.
func CheckLine(week [7]ShiftValue, shiftLength int, rules *domain.BusinessRules) []string {
	var violations []string
	length := float64(shiftLength)
	consecutive := 0
	for i := 0; i < 7; i++ {
		a, b := week[i], week[(i+1)%7]
		from, to := Day(i), Day(i).Next()
		if !SufficientRest(a, b, length, rules) {
			violations = append(violations,
				fmt.Sprintf("insufficient rest between %s and %s", from, to))
		} else if !DesirableMove(a, b, length) {
			violations = append(violations,
				fmt.Sprintf("undesirable move between %s and %s", from, to))
		}
		if Classify(week[i], length) == TypeMid {
			consecutive++
			if consecutive == rules.MaxConsecutiveMid+1 {
				violations = append(violations,
					fmt.Sprintf("more than %d consecutive mid shifts ending %s",
						rules.MaxConsecutiveMid, Day(i)))
			}
		} else {
			consecutive = 0
		}
	}
	return violations
}

// OutlierReport maps a flagged shift start to the days and quantities that
// tripped the check.
type OutlierReport map[float64]map[Day]int

// DetectOutliers flags demand quantities sitting above Q3 + 1.5 IQR of all
// quantities in the request. Quartiles are medians of the sorted halves, the
// middle element excluded on odd lengths. Returns nil when nothing stands
// out.
func DetectOutliers(dailyShifts [7]map[float64]int) OutlierReport {
	var quantities []int
	for _, day := range allDays {
		for _, quantity := range dailyShifts[day] {
			quantities = append(quantities, quantity)
		}
	}
	if len(quantities) < 4 {
		return nil
	}
	sort.Ints(quantities)

	lower := quantities[:len(quantities)/2]
	upper := quantities[(len(quantities)+1)/2:]
	q1 := median(lower)
	q3 := median(upper)
	upperBound := q3 + 1.5*(q3-q1)

	report := OutlierReport{}
	for _, day := range allDays {
		for shift, quantity := range dailyShifts[day] {
			if float64(quantity) > upperBound {
				if report[shift] == nil {
					report[shift] = map[Day]int{}
				}
				report[shift][day] = quantity
			}
		}
	}
	if len(report) == 0 {
		return nil
	}
	return report
}

func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}
