package roster

import (
	"fmt"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
)

// Request is the converted roster request as the engine consumes it: military
// times already turned into fractional hours by the boundary.
type Request struct {
	ShiftLength          int
	DailyShifts          [7]map[float64]int
	PreferredWorkPattern string
	PreferredShiftOrder  []float64
	RdoContiguous        bool
}

// attemptData is the immutable environment one attempt works against. Every
// shift line receives it explicitly; nothing here is mutated after build.
type attemptData struct {
	shiftLength  int
	length       float64
	rules        *domain.BusinessRules
	demand       *Demand
	adjacency    *AdjacencyIndex
	shiftsOfType [7]map[ShiftType][]float64
	pso          []float64
	daysInRDO    int
	shiftsPerfWk int
	workers      int
}

func newAttemptData(req *Request, demand *Demand, rules *domain.BusinessRules) (*attemptData, error) {
	d := &attemptData{
		shiftLength:  req.ShiftLength,
		length:       float64(req.ShiftLength),
		rules:        rules,
		demand:       demand,
		pso:          req.PreferredShiftOrder,
		daysInRDO:    7 - 40/req.ShiftLength,
		shiftsPerfWk: 40 / req.ShiftLength,
	}

	total := demand.TotalInWeek()
	if total%d.shiftsPerfWk != 0 {
		return nil, fmt.Errorf("total weekly demand %d is not divisible by %d shifts per worker", total, d.shiftsPerfWk)
	}
	d.workers = total / d.shiftsPerfWk

	d.adjacency = buildAdjacencyIndex(demand, d.length, rules, true)
	d.shiftsOfType = sortShiftsByType(demand, d.length)

	return d, nil
}

// sortShiftsByType indexes each day's catalog by duty period. Evening shifts
// are front-inserted so the latest ones are tried first.
func sortShiftsByType(demand *Demand, shiftLength float64) [7]map[ShiftType][]float64 {
	var byType [7]map[ShiftType][]float64
	for _, day := range allDays {
		byType[day] = map[ShiftType][]float64{
			TypeEve: {}, TypeDay: {}, TypeMid: {},
		}
		for _, shift := range demand.Shifts(day) {
			t := Classify(At(shift), shiftLength)
			if t == TypeEve {
				byType[day][t] = append([]float64{shift}, byType[day][t]...)
			} else {
				byType[day][t] = append(byType[day][t], shift)
			}
		}
	}
	return byType
}

// offPerDay derives how many workers must be off each day from the demand and
// the crew size.
func (d *attemptData) offPerDay() [7]int {
	var off [7]int
	for _, day := range allDays {
		off[day] = d.workers - d.demand.TotalOnDay(day)
	}
	return off
}

// shiftsToAdd is how many extra shifts make the weekly total divisible by the
// per-worker shift count. Computed on the raw request before any attempt.
func shiftsToAdd(req *Request) int {
	perWorker := 40 / req.ShiftLength
	total := 0
	for _, day := range allDays {
		for _, quantity := range req.DailyShifts[day] {
			total += quantity
		}
	}
	extra := total % perWorker
	if extra == 0 {
		return 0
	}
	return perWorker - extra
}
