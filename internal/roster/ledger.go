package roster

// QuotaLedger tracks, per (day, shift), how many workers are assigned and how
// many are still missing. The invariant assigned + missing == demand holds
// after every mutation; quota-relaxed commits raise the demand alongside the
// assignment so the invariant survives the relaxation.
type QuotaLedger struct {
	demand   *Demand
	assigned [7]map[float64]int
	missing  [7]map[float64]int

	quotaRelaxed int
}

func newQuotaLedger(demand *Demand) *QuotaLedger {
	l := &QuotaLedger{demand: demand}
	for _, day := range allDays {
		l.assigned[day] = make(map[float64]int)
		l.missing[day] = make(map[float64]int)
		for _, shift := range demand.Shifts(day) {
			l.missing[day][shift] = demand.Required(day, shift)
		}
	}
	return l
}

// Has reports whether (day, shift) exists in the demand at all. A shift that
// is not in the ledger can never be assigned.
func (l *QuotaLedger) Has(day Day, shift float64) bool {
	_, ok := l.missing[day][shift]
	return ok
}

// Missing returns the still-unfilled headcount for (day, shift).
func (l *QuotaLedger) Missing(day Day, shift float64) int {
	return l.missing[day][shift]
}

// Assigned returns the filled headcount for (day, shift).
func (l *QuotaLedger) Assigned(day Day, shift float64) int {
	return l.assigned[day][shift]
}

// Demand returns the required headcount for (day, shift), including any
// quota relaxations recorded during escalation.
func (l *QuotaLedger) Demand(day Day, shift float64) int {
	return l.assigned[day][shift] + l.missing[day][shift]
}

func (l *QuotaLedger) commit(day Day, shift float64) {
	l.assigned[day][shift]++
	l.missing[day][shift]--
}

func (l *QuotaLedger) release(day Day, shift float64) {
	l.assigned[day][shift]--
	l.missing[day][shift]++
}

// forceCommit records an assignment past the quota: demand and assignment
// rise together and the relaxation is counted for grading.
func (l *QuotaLedger) forceCommit(day Day, shift float64) {
	l.assigned[day][shift]++
	l.quotaRelaxed++
}

// TotalMissing is the number of still-unfilled slots across the week.
// QuotaRelaxed counts the commits that were only possible because the daily
// demand was bumped to make room for them.
func (l *QuotaLedger) QuotaRelaxed() int {
	return l.quotaRelaxed
}

func (l *QuotaLedger) TotalMissing() int {
	total := 0
	for _, day := range allDays {
		for _, n := range l.missing[day] {
			total += n
		}
	}
	return total
}

// missingShiftsOn lists the day's shifts that still need workers, in catalog
// order.
func (l *QuotaLedger) missingShiftsOn(day Day) []float64 {
	var shifts []float64
	for _, shift := range l.demand.Shifts(day) {
		if l.missing[day][shift] > 0 {
			shifts = append(shifts, shift)
		}
	}
	return shifts
}
