package roster

import (
	"math"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
)

// ShiftType classifies a shift start time into one of the three duty periods,
// or marks the value as a day off / still unassigned.
type ShiftType string

const (
	TypeDay        ShiftType = "DAY"
	TypeEve        ShiftType = "EVE"
	TypeMid        ShiftType = "MID"
	TypeRDO        ShiftType = "RDO"
	TypeUnassigned ShiftType = "unassigned"
)

// ValueKind discriminates the three shapes a shift value can take.
type ValueKind int

const (
	ValueTime ValueKind = iota
	ValueOff
	ValueUnassigned
)

// ShiftValue is a single day's value as seen by the business rules: a day off,
// an unassigned day, or a concrete start time in fractional hours (7.5 = 07:30).
type ShiftValue struct {
	Kind  ValueKind
	Start float64
}

func Off() ShiftValue        { return ShiftValue{Kind: ValueOff} }
func Unassigned() ShiftValue { return ShiftValue{Kind: ValueUnassigned} }
func At(start float64) ShiftValue {
	return ShiftValue{Kind: ValueTime, Start: start}
}

// Classify places a shift value into a duty period by comparing its start time
// to windows of one shift length centred on 07:00 and 15:00.
func Classify(v ShiftValue, shiftLength float64) ShiftType {
	switch v.Kind {
	case ValueOff:
		return TypeRDO
	case ValueUnassigned:
		return TypeUnassigned
	}

	half := shiftLength / 2
	switch {
	case v.Start > 7-half && v.Start <= 7+half:
		return TypeDay
	case v.Start > 15-half && v.Start <= 15+half:
		return TypeEve
	default:
		return TypeMid
	}
}

// round2 keeps the rest computation stable for fractional start times.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SufficientRest reports whether the time between the end of prev and the
// start of next satisfies the minimum-rest rules for the given shift length.
// A day off or an unassigned day never restricts its neighbour.
func SufficientRest(prev, next ShiftValue, shiftLength float64, rules *domain.BusinessRules) bool {
	if prev.Kind != ValueTime || next.Kind != ValueTime {
		return true
	}

	// Start times above this cutoff belong to shifts that begin on the
	// previous calendar day and spill over midnight.
	cutoff := 23 - shiftLength/2

	var gap float64
	switch {
	case prev.Start >= 0 && prev.Start <= cutoff:
		if next.Start >= 0 && next.Start <= cutoff {
			if prev.Start < next.Start {
				return true
			}
			gap = (24 - prev.Start) + next.Start
		} else {
			gap = next.Start - prev.Start
		}
	default:
		if next.Start >= 0 && next.Start <= cutoff {
			return true
		}
		gap = (24 - prev.Start) + next.Start
	}

	rest := round2(gap - shiftLength)

	prevType := Classify(prev, shiftLength)
	nextType := Classify(next, shiftLength)

	switch {
	case prevType == TypeDay && nextType == TypeMid:
		// An early day start on an 8 hour roster can never turn around
		// into a mid shift, regardless of the configured minimum.
		if shiftLength == 8 && prev.Start <= 5.5 {
			return false
		}
		return rest >= rules.MinRestDayToMid
	case prevType == TypeEve && nextType == TypeDay:
		return rest >= rules.MinRestEveToDay
	case prevType == TypeMid && nextType == TypeMid:
		return rest >= rules.MinRestMidToMid
	default:
		return rest >= 8
	}
}

// DesirableMove reports whether the transition from prev to next is an
// ergonomically preferred one. Days off and unassigned days are neutral.
func DesirableMove(prev, next ShiftValue, shiftLength float64) bool {
	if prev.Kind != ValueTime || next.Kind != ValueTime {
		return true
	}

	prevType := Classify(prev, shiftLength)
	nextType := Classify(next, shiftLength)

	switch prevType {
	case TypeEve:
		return nextType == TypeEve || nextType == TypeDay
	case TypeDay:
		return nextType == TypeDay || nextType == TypeMid
	default:
		// Coming off a mid shift, a 10 hour roster can move anywhere;
		// shorter rosters should stay on mids.
		if shiftLength == 10 {
			return true
		}
		return nextType == TypeMid
	}
}
