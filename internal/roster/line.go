package roster

import "sort"

// SlotState tags what a line knows about one day.
type SlotState int

const (
	SlotUnassigned SlotState = iota
	SlotOff
	SlotCommitted
	SlotCandidates
)

// Slot is one day of one worker's line. Candidates is only meaningful in the
// SlotCandidates state and holds the shifts still admissible on that day.
type Slot struct {
	State      SlotState
	Shift      float64
	Candidates []float64
}

func (s Slot) value() ShiftValue {
	switch s.State {
	case SlotOff:
		return Off()
	case SlotCommitted:
		return At(s.Shift)
	default:
		return Unassigned()
	}
}

func (s Slot) open() bool {
	return s.State == SlotUnassigned || s.State == SlotCandidates
}

// AssignResult reports why a placement did or did not happen. Refusals are
// ordinary outcomes here, not errors; the engine routes on them constantly.
type AssignResult int

const (
	AssignCommitted AssignResult = iota
	AssignQuotaExceeded
	AssignRuleViolation
	AssignInconsistent
)

type assignOptions struct {
	span            int
	ignoreDesirable bool
	relaxQuota      bool
}

// ShiftLine is one worker's week: seven slots plus the RDO rotation the line
// was dealt during distribution.
type ShiftLine struct {
	row      int
	slots    [7]Slot
	rotation string
	filled   bool

	data  *attemptData
	sched *schedule
}

func newShiftLine(row int, data *attemptData, sched *schedule) *ShiftLine {
	return &ShiftLine{row: row, data: data, sched: sched}
}

func (l *ShiftLine) assignOff(day Day) {
	l.slots[day] = Slot{State: SlotOff}
}

func (l *ShiftLine) valueOn(day Day) ShiftValue {
	return l.slots[day].value()
}

// complete reports whether every day is either off or committed.
func (l *ShiftLine) complete() bool {
	for _, day := range allDays {
		if l.slots[day].open() {
			return false
		}
	}
	return true
}

func (l *ShiftLine) openDays() []Day {
	var days []Day
	for _, day := range allDays {
		if l.slots[day].open() {
			days = append(days, day)
		}
	}
	return days
}

// assignShift commits a shift on a day, validating quota and business rules
// over a span of days starting at day. A failed placement leaves the line and
// the ledger untouched. A successful one runs the candidate cascades.
func (l *ShiftLine) assignShift(day Day, shift float64, opts assignOptions) AssignResult {
	slot := l.slots[day]
	if slot.State == SlotOff {
		return AssignInconsistent
	}
	if slot.State == SlotCommitted && slot.Shift == shift {
		return AssignCommitted
	}

	ledger := l.sched.ledger
	if !ledger.Has(day, shift) {
		return AssignQuotaExceeded
	}
	relaxed := false
	if ledger.Missing(day, shift) == 0 {
		if !opts.relaxQuota {
			return AssignQuotaExceeded
		}
		relaxed = true
	}

	prev := slot
	l.slots[day] = Slot{State: SlotCommitted, Shift: shift}

	if opts.span == 0 {
		opts.span = 1
	}
	if !l.checkAllBusinessRules(day, opts.span, opts.ignoreDesirable) {
		l.slots[day] = prev
		return AssignRuleViolation
	}

	if prev.State == SlotCommitted {
		ledger.release(day, prev.Shift)
	}
	if relaxed {
		ledger.forceCommit(day, shift)
	} else {
		ledger.commit(day, shift)
	}

	l.horizontalCascade(day)
	if ledger.Missing(day, shift) == 0 {
		l.sched.verticalCascade(day)
	}
	return AssignCommitted
}

// checkAllBusinessRules validates the line around a window of span days
// starting at start. Rest is checked first, then consecutive mid shifts over
// the whole week, then desirable moves unless suppressed.
func (l *ShiftLine) checkAllBusinessRules(start Day, span int, ignoreDesirable bool) bool {
	for k := -1; k < span; k++ {
		a := start.offset(k)
		b := a.Next()
		if !SufficientRest(l.valueOn(a), l.valueOn(b), l.data.length, l.data.rules) {
			return false
		}
	}

	consecutive := 0
	for _, day := range allDays {
		if Classify(l.valueOn(day), l.data.length) == TypeMid {
			consecutive++
			if consecutive > l.data.rules.MaxConsecutiveMid {
				return false
			}
		} else {
			consecutive = 0
		}
	}

	if !ignoreDesirable {
		for k := -1; k < span; k++ {
			a := start.offset(k)
			b := a.Next()
			if !DesirableMove(l.valueOn(a), l.valueOn(b), l.data.length) {
				return false
			}
		}
	}
	return true
}

// seedCandidates turns every unassigned day into the full list of shifts still
// missing on that day. Run once after the structural phases.
func (l *ShiftLine) seedCandidates() {
	for _, day := range allDays {
		if l.slots[day].State != SlotUnassigned {
			continue
		}
		var candidates []float64
		for _, shift := range l.data.demand.Shifts(day) {
			if l.sched.ledger.Missing(day, shift) > 0 {
				candidates = append(candidates, shift)
			}
		}
		sort.Float64s(candidates)
		l.slots[day] = Slot{State: SlotCandidates, Candidates: candidates}
	}
}

// admissibleAfter is the set of shifts on day that may follow whatever the
// previous day holds.
func (l *ShiftLine) admissibleAfter(day Day) shiftSet {
	prev := day.Prev()
	switch s := l.slots[prev]; s.State {
	case SlotOff:
		out := shiftSet{}
		for _, shift := range l.data.demand.Shifts(prev) {
			out.union(l.data.adjacency.CompatibleAfter(prev, shift))
		}
		return out
	case SlotCommitted:
		out := shiftSet{}
		out.union(l.data.adjacency.CompatibleAfter(prev, s.Shift))
		return out
	default:
		out := shiftSet{}
		for _, shift := range s.Candidates {
			out.union(l.data.adjacency.CompatibleAfter(prev, shift))
		}
		return out
	}
}

// admissibleBefore is the set of shifts on day that may precede whatever the
// next day holds.
func (l *ShiftLine) admissibleBefore(day Day) shiftSet {
	next := day.Next()
	switch s := l.slots[next]; s.State {
	case SlotOff:
		out := shiftSet{}
		for _, shift := range l.data.demand.Shifts(next) {
			out.union(l.data.adjacency.CompatibleBefore(next, shift))
		}
		return out
	case SlotCommitted:
		out := shiftSet{}
		out.union(l.data.adjacency.CompatibleBefore(next, s.Shift))
		return out
	default:
		out := shiftSet{}
		for _, shift := range s.Candidates {
			out.union(l.data.adjacency.CompatibleBefore(next, shift))
		}
		return out
	}
}

// updateCandidatesOnDay recomputes the candidate set of an open day as the
// intersection of what the neighbours allow, minus exhausted shifts. Reports
// whether the set changed so cascades know when to stop.
func (l *ShiftLine) updateCandidatesOnDay(day Day) bool {
	slot := l.slots[day]
	if !slot.open() {
		return false
	}

	after := l.admissibleAfter(day)
	before := l.admissibleBefore(day)

	var candidates []float64
	for shift := range after {
		if !before.contains(shift) {
			continue
		}
		if l.sched.ledger.Missing(day, shift) == 0 {
			continue
		}
		candidates = append(candidates, shift)
	}
	sort.Float64s(candidates)

	if slot.State == SlotCandidates && equalShifts(slot.Candidates, candidates) {
		return false
	}
	l.slots[day] = Slot{State: SlotCandidates, Candidates: candidates}
	return true
}

func equalShifts(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// horizontalCascade propagates a change along the line, first backward then
// forward, committing any day whose candidates collapse to a single shift.
func (l *ShiftLine) horizontalCascade(origin Day) {
	for _, step := range []func(Day) Day{Day.Prev, Day.Next} {
		day := step(origin)
		for day != origin {
			if !l.updateCandidatesOnDay(day) {
				break
			}
			l.commitSingleton(day)
			day = step(day)
		}
	}
}

func (l *ShiftLine) commitSingleton(day Day) {
	slot := l.slots[day]
	if slot.State == SlotCandidates && len(slot.Candidates) == 1 {
		l.assignShift(day, slot.Candidates[0], assignOptions{})
	}
}

// dayAfterConsecutiveOff finds the working day right after the off block.
func (l *ShiftLine) dayAfterConsecutiveOff() (Day, bool) {
	for _, day := range allDays {
		if l.slots[day].State != SlotOff &&
			l.slots[day.Prev()].State == SlotOff &&
			l.slots[day.Prev().Prev()].State == SlotOff {
			return day, true
		}
	}
	return Sunday, false
}

// dayBeforeConsecutiveOff finds the working day right before the off block.
func (l *ShiftLine) dayBeforeConsecutiveOff() (Day, bool) {
	for _, day := range allDays {
		if l.slots[day].State != SlotOff &&
			l.slots[day.Next()].State == SlotOff &&
			l.slots[day.Next().Next()].State == SlotOff {
			return day, true
		}
	}
	return Sunday, false
}

// fillPreferredOrder walks the preferred shift order across the working days
// of the line, starting right after the off block. Placement is all or
// nothing: any day that cannot take its preferred shift, or an alternate of
// the same type on early attempts, wipes the whole walk. The ledger is only
// charged once the entire line lands.
func (l *ShiftLine) fillPreferredOrder(attempt int) bool {
	day, ok := l.dayAfterConsecutiveOff()
	if !ok {
		return false
	}

	for _, preferred := range l.data.pso {
		if !l.placePreferred(day, preferred, attempt) {
			l.clearWorkingDays()
			return false
		}
		day = day.Next()
		for l.slots[day].State == SlotOff {
			day = day.Next()
		}
	}

	l.filled = true
	for _, d := range allDays {
		if l.slots[d].State == SlotCommitted {
			l.sched.ledger.commit(d, l.slots[d].Shift)
		}
	}
	return true
}

func (l *ShiftLine) placePreferred(day Day, preferred float64, attempt int) bool {
	if l.tryDirect(day, preferred) {
		return true
	}
	if attempt >= 2 {
		return false
	}
	want := Classify(At(preferred), l.data.length)
	for _, alt := range l.data.shiftsOfType[day][want] {
		if alt == preferred {
			continue
		}
		if l.tryDirect(day, alt) {
			return true
		}
	}
	return false
}

// tryDirect places a shift without touching the ledger or cascading. Used by
// the preferred-order walk, which settles accounts at the end.
func (l *ShiftLine) tryDirect(day Day, shift float64) bool {
	ledger := l.sched.ledger
	if !ledger.Has(day, shift) || ledger.Missing(day, shift) == 0 {
		return false
	}
	prev := l.slots[day]
	l.slots[day] = Slot{State: SlotCommitted, Shift: shift}
	if !l.checkAllBusinessRules(day, 1, false) {
		l.slots[day] = prev
		return false
	}
	return true
}

func (l *ShiftLine) clearWorkingDays() {
	for _, day := range allDays {
		if l.slots[day].State != SlotOff {
			l.slots[day] = Slot{State: SlotUnassigned}
		}
	}
}

// assignOnEmptyBeforeConsecutiveOff places a shift of the wanted type on the
// open day just before the off block.
func (l *ShiftLine) assignOnEmptyBeforeConsecutiveOff(want ShiftType) bool {
	day, ok := l.dayBeforeConsecutiveOff()
	if !ok || !l.slots[day].open() {
		return false
	}
	return l.tryShiftsOfType(day, want, assignOptions{})
}

// assignOnEmptyAfterConsecutiveOff places a shift of the wanted type on the
// open day just after the off block.
func (l *ShiftLine) assignOnEmptyAfterConsecutiveOff(want ShiftType) bool {
	day, ok := l.dayAfterConsecutiveOff()
	if !ok || !l.slots[day].open() {
		return false
	}
	return l.tryShiftsOfType(day, want, assignOptions{})
}

func (l *ShiftLine) tryShiftsOfType(day Day, want ShiftType, opts assignOptions) bool {
	for _, shift := range l.data.shiftsOfType[day][want] {
		if l.assignShift(day, shift, opts) == AssignCommitted {
			return true
		}
	}
	return false
}

// assignOnEmptyBeforeShiftOfType places a shift of the wanted type on an open
// day whose following day already holds a shift of that type.
func (l *ShiftLine) assignOnEmptyBeforeShiftOfType(want ShiftType) bool {
	for _, day := range allDays {
		if !l.slots[day].open() {
			continue
		}
		next := l.slots[day.Next()]
		if next.State != SlotCommitted || Classify(At(next.Shift), l.data.length) != want {
			continue
		}
		if l.tryShiftsOfType(day, want, assignOptions{}) {
			return true
		}
	}
	return false
}

// assignOnEmptyAfterShiftOfType is the mirror image, anchored on the day
// before.
func (l *ShiftLine) assignOnEmptyAfterShiftOfType(want ShiftType) bool {
	for _, day := range allDays {
		if !l.slots[day].open() {
			continue
		}
		prev := l.slots[day.Prev()]
		if prev.State != SlotCommitted || Classify(At(prev.Shift), l.data.length) != want {
			continue
		}
		if l.tryShiftsOfType(day, want, assignOptions{}) {
			return true
		}
	}
	return false
}

// replaceBeforeShiftOfSameType tries to fill an open day before a committed
// shift of the wanted type, allowing one level of repair: if every candidate
// trips a rule, the committed neighbour is moved to an alternate of the same
// type and the fill is retried.
func (l *ShiftLine) replaceBeforeShiftOfSameType(want ShiftType) bool {
	for _, day := range allDays {
		if !l.slots[day].open() {
			continue
		}
		next := day.Next()
		anchor := l.slots[next]
		if anchor.State != SlotCommitted || Classify(At(anchor.Shift), l.data.length) != want {
			continue
		}
		for _, shift := range l.data.shiftsOfType[day][want] {
			switch l.assignShift(day, shift, assignOptions{}) {
			case AssignCommitted:
				return true
			case AssignRuleViolation:
				if l.repairNeighbourAndRetry(day, shift, next, want) {
					return true
				}
			}
		}
	}
	return false
}

func (l *ShiftLine) repairNeighbourAndRetry(day Day, shift float64, neighbour Day, want ShiftType) bool {
	old := l.slots[neighbour].Shift
	for _, alt := range l.data.shiftsOfType[neighbour][want] {
		if alt == old {
			continue
		}
		if l.assignShift(neighbour, alt, assignOptions{}) != AssignCommitted {
			continue
		}
		if l.assignShift(day, shift, assignOptions{}) == AssignCommitted {
			return true
		}
		l.assignShift(neighbour, old, assignOptions{})
		return false
	}
	return false
}
