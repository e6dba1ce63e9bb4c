package roster

import "github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"

type shiftSet map[float64]struct{}

func (s shiftSet) contains(shift float64) bool {
	_, ok := s[shift]
	return ok
}

func (s shiftSet) union(other shiftSet) {
	for shift := range other {
		s[shift] = struct{}{}
	}
}

// AdjacencyIndex precomputes, for every (day, shift), which shift starts on
// the neighbouring days are compatible with it under the rest rules and,
// unless suppressed, the desirable-move rules. Built once per attempt from an
// immutable demand table.
type AdjacencyIndex struct {
	before [7]map[float64]shiftSet // shifts on day-1 that can precede (day, shift)
	after  [7]map[float64]shiftSet // shifts on day+1 that can follow (day, shift)
}

func buildAdjacencyIndex(demand *Demand, shiftLength float64, rules *domain.BusinessRules, checkDesirable bool) *AdjacencyIndex {
	ix := &AdjacencyIndex{}

	compatible := func(prev, next float64) bool {
		if !SufficientRest(At(prev), At(next), shiftLength, rules) {
			return false
		}
		if checkDesirable && !DesirableMove(At(prev), At(next), shiftLength) {
			return false
		}
		return true
	}

	for _, day := range allDays {
		ix.before[day] = make(map[float64]shiftSet)
		ix.after[day] = make(map[float64]shiftSet)

		for _, shift := range demand.Shifts(day) {
			before := make(shiftSet)
			for _, prev := range demand.Shifts(day.Prev()) {
				if compatible(prev, shift) {
					before[prev] = struct{}{}
				}
			}
			ix.before[day][shift] = before

			after := make(shiftSet)
			for _, next := range demand.Shifts(day.Next()) {
				if compatible(shift, next) {
					after[next] = struct{}{}
				}
			}
			ix.after[day][shift] = after
		}
	}

	return ix
}

// CompatibleBefore returns the shifts on the previous day that can precede
// the given shift on the given day.
func (ix *AdjacencyIndex) CompatibleBefore(day Day, shift float64) shiftSet {
	return ix.before[day][shift]
}

// CompatibleAfter returns the shifts on the next day that can follow the
// given shift on the given day.
func (ix *AdjacencyIndex) CompatibleAfter(day Day, shift float64) shiftSet {
	return ix.after[day][shift]
}
