package roster

// swapRepair tries to fill a still-missing shift by trading a run of days with
// another line. The run starts as just the missing day and grows one committed
// day at a time in the given direction (+1 forward, -1 backward) until a donor
// works out or the line runs off its committed days.
//
// A trade only lands when both sides pass the business rules with the other
// side's values in place. On success the missing shift is the only new ledger
// entry; every other day merely changes hands.
func (l *ShiftLine) swapRepair(missingDay Day, missingShift float64, direction int, ignoreDesirable bool) bool {
	run := []Day{missingDay}

	for {
		if l.tryDonors(run, missingDay, missingShift, ignoreDesirable) {
			return true
		}
		if len(run) == 7 {
			return false
		}
		next := run[len(run)-1].offset(direction)
		if l.slots[next].State != SlotCommitted {
			return false
		}
		run = append(run, next)
	}
}

func (l *ShiftLine) tryDonors(run []Day, missingDay Day, missingShift float64, ignoreDesirable bool) bool {
	start, span := runWindow(run)

	for _, donor := range l.sched.lines {
		if donor == l || !donor.committedOver(run) {
			continue
		}

		mine := l.snapshot(run)
		theirs := donor.snapshot(run)

		for i, day := range run {
			l.slots[day] = theirs[i]
		}
		if !l.checkAllBusinessRules(start, span, ignoreDesirable) {
			l.restore(run, mine)
			continue
		}

		for i, day := range run {
			if day == missingDay {
				donor.slots[day] = Slot{State: SlotCommitted, Shift: missingShift}
			} else {
				donor.slots[day] = mine[i]
			}
		}
		if !donor.checkAllBusinessRules(start, span, ignoreDesirable) {
			donor.restore(run, theirs)
			l.restore(run, mine)
			continue
		}

		l.sched.ledger.commit(missingDay, missingShift)
		return true
	}
	return false
}

func (l *ShiftLine) committedOver(run []Day) bool {
	for _, day := range run {
		if l.slots[day].State != SlotCommitted {
			return false
		}
	}
	return true
}

func (l *ShiftLine) snapshot(run []Day) []Slot {
	out := make([]Slot, len(run))
	for i, day := range run {
		out[i] = l.slots[day]
	}
	return out
}

func (l *ShiftLine) restore(run []Day, saved []Slot) {
	for i, day := range run {
		l.slots[day] = saved[i]
	}
}

// runWindow normalizes a run, which may grow in either direction and wrap the
// week, into a start day and span for rule checking.
func runWindow(run []Day) (Day, int) {
	if len(run) == 1 {
		return run[0], 1
	}
	first, last := run[0], run[len(run)-1]
	if last == first.offset(len(run)-1) {
		return first, len(run) // grew forward
	}
	return last, len(run) // grew backward
}
