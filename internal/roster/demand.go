package roster

import (
	"math/rand"
	"sort"
)

// Demand is the weekly staffing requirement: for every day, how many workers
// must start at each shift time. It is read-only once an attempt begins.
type Demand struct {
	required [7]map[float64]int
	catalog  [7][]float64
}

// NewDemand builds a demand table from per-day headcounts, dropping shifts
// with a zero quantity and fixing the per-day catalog order.
func NewDemand(perDay [7]map[float64]int) *Demand {
	d := &Demand{}
	for _, day := range allDays {
		d.required[day] = make(map[float64]int)
		for shift, quantity := range perDay[day] {
			if quantity == 0 {
				continue
			}
			d.required[day][shift] = quantity
		}
		d.catalog[day] = sortedCatalog(d.required[day])
	}
	return d
}

// sortedCatalog orders shift starts by wall clock beginning at 23:00, so that
// overnight mids come first and evening shifts last. This is the order fills
// walk when trying alternates.
func sortedCatalog(shifts map[float64]int) []float64 {
	catalog := make([]float64, 0, len(shifts))
	for shift := range shifts {
		catalog = append(catalog, shift)
	}
	sort.Slice(catalog, func(i, j int) bool {
		return catalogKey(catalog[i]) < catalogKey(catalog[j])
	})
	return catalog
}

func catalogKey(shift float64) float64 {
	k := shift - 23
	if k < 0 {
		k += 24
	}
	return k
}

// Required returns the headcount for (day, shift); zero when the shift does
// not exist on that day.
func (d *Demand) Required(day Day, shift float64) int {
	return d.required[day][shift]
}

// Has reports whether the shift exists on the given day at all.
func (d *Demand) Has(day Day, shift float64) bool {
	_, ok := d.required[day][shift]
	return ok
}

// Shifts returns the day's shift starts in catalog order.
func (d *Demand) Shifts(day Day) []float64 {
	return d.catalog[day]
}

func (d *Demand) TotalOnDay(day Day) int {
	total := 0
	for _, quantity := range d.required[day] {
		total += quantity
	}
	return total
}

func (d *Demand) TotalInWeek() int {
	total := 0
	for _, day := range allDays {
		total += d.TotalOnDay(day)
	}
	return total
}

// Clone deep-copies the table so one attempt's perturbation never leaks into
// another attempt.
func (d *Demand) Clone() *Demand {
	clone := &Demand{}
	for _, day := range allDays {
		clone.required[day] = make(map[float64]int, len(d.required[day]))
		for shift, quantity := range d.required[day] {
			clone.required[day][shift] = quantity
		}
		clone.catalog[day] = append([]float64(nil), d.catalog[day]...)
	}
	return clone
}

func (d *Demand) add(day Day, shift float64) {
	d.required[day][shift]++
}

var weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// isNightStart filters out overnight starts when picking perturbation targets.
func isNightStart(shift float64) bool {
	return (shift >= 22 && shift < 24) || (shift >= 0 && shift < 6)
}

// addToBusiestShifts tops up total demand by raising the busiest non-mid
// weekday shifts on randomly chosen weekdays. Used on even-numbered attempts.
func (d *Demand) addToBusiestShifts(shiftsToAdd int, shiftLength float64, rng *rand.Rand) {
	candidates := make(map[Day][]float64)
	for _, day := range weekdays {
		for _, shift := range d.catalog[day] {
			if Classify(At(shift), shiftLength) == TypeMid {
				continue
			}
			if d.required[day][shift] == 0 {
				continue
			}
			candidates[day] = append(candidates[day], shift)
		}
	}

	days := append([]Day(nil), weekdays...)
	for shiftsToAdd > 0 {
		if len(days) == 0 {
			days = append([]Day(nil), weekdays...)
		}
		i := rng.Intn(len(days))
		day := days[i]
		days = append(days[:i], days[i+1:]...)

		if len(candidates[day]) == 0 {
			for _, shift := range d.catalog[day] {
				if isNightStart(shift) || d.required[day][shift] == 0 {
					continue
				}
				candidates[day] = append(candidates[day], shift)
			}
		}

		// Pick the busiest remaining candidate on this day.
		busiest := -1
		maxQuantity := 0
		for j, shift := range candidates[day] {
			if d.required[day][shift] > maxQuantity {
				maxQuantity = d.required[day][shift]
				busiest = j
			}
		}
		if busiest < 0 {
			continue
		}
		shift := candidates[day][busiest]
		candidates[day] = append(candidates[day][:busiest], candidates[day][busiest+1:]...)

		d.add(day, shift)
		shiftsToAdd--
	}
}

// addToLeastLoadedDays tops up total demand by repeatedly finding the day with
// the fewest shifts and raising its least-raised daytime shift. Used on
// odd-numbered attempts.
func (d *Demand) addToLeastLoadedDays(shiftsToAdd int) {
	added := [7]map[float64]int{}
	for _, day := range allDays {
		added[day] = make(map[float64]int)
		for _, shift := range d.catalog[day] {
			if isNightStart(shift) || d.required[day][shift] == 0 {
				continue
			}
			added[day][shift] = 0
		}
	}

	for shiftsToAdd > 0 {
		leastLoaded := Sunday
		minTotal := int(^uint(0) >> 1)
		for _, day := range allDays {
			if len(added[day]) == 0 {
				continue
			}
			if total := d.TotalOnDay(day); total < minTotal {
				minTotal = total
				leastLoaded = day
			}
		}

		var target float64
		minAdded := int(^uint(0) >> 1)
		for shift, count := range added[leastLoaded] {
			if count < minAdded || (count == minAdded && shift < target) {
				minAdded = count
				target = shift
			}
		}

		d.add(leastLoaded, target)
		added[leastLoaded][target]++
		shiftsToAdd--
	}
}
