package roster

import (
	"testing"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSchedule(perDay [7]map[float64]int, shiftLength, workers int, rules *domain.BusinessRules) *schedule {
	demand := NewDemand(perDay)
	length := float64(shiftLength)
	data := &attemptData{
		shiftLength:  shiftLength,
		length:       length,
		rules:        rules,
		demand:       demand,
		adjacency:    buildAdjacencyIndex(demand, length, rules, true),
		shiftsOfType: sortShiftsByType(demand, length),
		daysInRDO:    7 - 40/shiftLength,
		shiftsPerfWk: 40 / shiftLength,
		workers:      workers,
	}
	return newSchedule(data, &RdoDistribution{})
}

func TestAssignShiftOnOffDay(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1}), 8, 1, testRules(8))
	line := s.lines[0]
	line.assignOff(Monday)

	assert.Equal(t, AssignInconsistent, line.assignShift(Monday, 7, assignOptions{}))
}

func TestAssignShiftQuota(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1}), 8, 2, testRules(8))
	for _, line := range s.lines {
		line.seedCandidates()
	}

	require.Equal(t, AssignCommitted, s.lines[0].assignShift(Monday, 7, assignOptions{}))

	// Monday's only slot is taken; the second line is turned away.
	assert.Equal(t, AssignQuotaExceeded, s.lines[1].assignShift(Monday, 7, assignOptions{}))

	// A shift that is not in the demand at all never lands.
	assert.Equal(t, AssignQuotaExceeded, s.lines[1].assignShift(Monday, 9, assignOptions{}))

	// Relaxing the quota forces it through and is billed to the ledger.
	assert.Equal(t, AssignCommitted,
		s.lines[1].assignShift(Monday, 7, assignOptions{relaxQuota: true}))
	assert.Equal(t, 1, s.ledger.QuotaRelaxed())
	assert.Equal(t, 2, s.ledger.Assigned(Monday, 7))
}

func TestAssignShiftRuleViolation(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1, 15: 1}), 8, 1, testRules(8))
	line := s.lines[0]
	line.slots[Monday] = Slot{State: SlotCommitted, Shift: 7}
	s.ledger.commit(Monday, 7)

	// A day shift into an evening shift is not a desirable move.
	assert.Equal(t, AssignRuleViolation, line.assignShift(Tuesday, 15, assignOptions{}))
	assert.Equal(t, Unassigned(), line.valueOn(Tuesday))
	assert.Equal(t, 0, s.ledger.Assigned(Tuesday, 15))

	// Suppressing desirability lets it through on rest alone.
	assert.Equal(t, AssignCommitted,
		line.assignShift(Tuesday, 15, assignOptions{ignoreDesirable: true}))
	assert.Equal(t, At(15), line.valueOn(Tuesday))
	assert.Equal(t, 1, s.ledger.Assigned(Tuesday, 15))

	// Re-assigning the committed shift is a no-op.
	assert.Equal(t, AssignCommitted,
		line.assignShift(Tuesday, 15, assignOptions{ignoreDesirable: true}))
	assert.Equal(t, 1, s.ledger.Assigned(Tuesday, 15))
}

func TestCascadesCompleteTheGrid(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1, 15: 1}), 8, 2, testRules(8))
	for _, line := range s.lines {
		line.seedCandidates()
	}

	// One commit collapses everything: the first line can only chain day
	// shifts, which exhausts them and leaves the second line nothing but
	// evenings.
	require.Equal(t, AssignCommitted, s.lines[0].assignShift(Monday, 7, assignOptions{}))

	for _, day := range allDays {
		assert.Equal(t, At(7), s.lines[0].valueOn(day), "line 0 on %s", day)
		assert.Equal(t, At(15), s.lines[1].valueOn(day), "line 1 on %s", day)
	}
	assert.Equal(t, 0, s.ledger.TotalMissing())
}

func TestSeedCandidatesSkipsExhausted(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1, 15: 1}), 8, 2, testRules(8))
	s.ledger.commit(Monday, 7)

	line := s.lines[0]
	line.seedCandidates()

	assert.Equal(t, []float64{15}, line.slots[Monday].Candidates)
	assert.Equal(t, []float64{7, 15}, line.slots[Tuesday].Candidates)
}

func TestOffBlockAnchors(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1}), 8, 1, testRules(8))
	line := s.lines[0]
	line.assignOff(Saturday)
	line.assignOff(Sunday)

	after, ok := line.dayAfterConsecutiveOff()
	require.True(t, ok)
	assert.Equal(t, Monday, after)

	before, ok := line.dayBeforeConsecutiveOff()
	require.True(t, ok)
	assert.Equal(t, Friday, before)
}

func TestOffBlockAnchorsWithoutBlock(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1}), 8, 1, testRules(8))
	line := s.lines[0]
	line.assignOff(Wednesday)

	_, ok := line.dayAfterConsecutiveOff()
	assert.False(t, ok)
	_, ok = line.dayBeforeConsecutiveOff()
	assert.False(t, ok)
}

func TestFillPreferredOrder(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1, 15: 1}), 8, 1, testRules(8))
	s.data.pso = []float64{15, 15, 15, 15, 7}
	line := s.lines[0]
	line.assignOff(Saturday)
	line.assignOff(Sunday)

	require.True(t, line.fillPreferredOrder(0))
	assert.True(t, line.filled)

	want := map[Day]float64{Monday: 15, Tuesday: 15, Wednesday: 15, Thursday: 15, Friday: 7}
	for day, shift := range want {
		assert.Equal(t, At(shift), line.valueOn(day), "on %s", day)
		assert.Equal(t, 1, s.ledger.Assigned(day, shift), "ledger on %s", day)
	}
	assert.Equal(t, 14-5, s.ledger.TotalMissing())
}

func TestFillPreferredOrderAllOrNothing(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1, 15: 1}), 8, 1, testRules(8))
	// The second position cannot follow a day shift with an evening, and
	// Tuesday has no other evening start to fall back on.
	s.data.pso = []float64{7, 15, 15, 15, 15}
	line := s.lines[0]
	line.assignOff(Saturday)
	line.assignOff(Sunday)

	assert.False(t, line.fillPreferredOrder(0))
	assert.False(t, line.filled)

	for _, day := range []Day{Monday, Tuesday, Wednesday, Thursday, Friday} {
		assert.Equal(t, Unassigned(), line.valueOn(day), "on %s", day)
	}
	assert.Equal(t, 14, s.ledger.TotalMissing())
}
