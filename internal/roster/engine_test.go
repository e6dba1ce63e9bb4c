package roster

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateFullCoverage(t *testing.T) {
	rules := &domain.BusinessRules{
		ShiftLength:       10,
		MinRestDayToMid:   9,
		MinRestEveToDay:   9,
		MinRestMidToMid:   9,
		MaxConsecutiveMid: 4,
	}
	req := &Request{
		ShiftLength:         10,
		DailyShifts:         uniformDemand(map[float64]int{7: 4}),
		PreferredShiftOrder: []float64{7, 7, 7, 7},
		RdoContiguous:       true,
	}

	engine := NewEngine(rules, Options{MaxAttempts: 2, Seed: 1}, discardLogger())
	result, err := engine.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempts)
	require.Len(t, result.Schedules, 1)

	best := result.Schedules[0]
	assert.Equal(t, 100, best.Grade)
	assert.Equal(t, 0, best.Unresolved)
	assert.Equal(t, 0, best.QuotaRelaxed)
	require.Len(t, best.Grid, 7)
	require.Len(t, best.Rotations, 7)

	// Seven workers on a three day RDO: one worker per rotation, four
	// working days each, all on the 07:00 start.
	seen := map[string]bool{}
	for _, rotation := range best.Rotations {
		seen[rotation] = true
	}
	assert.Len(t, seen, 7)

	for row, week := range best.Grid {
		off, working := 0, 0
		for _, value := range week {
			switch value.Kind {
			case ValueOff:
				off++
			case ValueTime:
				working++
				assert.Equal(t, 7.0, value.Start, "row %d", row)
			default:
				t.Fatalf("row %d has an unresolved day", row)
			}
		}
		assert.Equal(t, 3, off, "row %d", row)
		assert.Equal(t, 4, working, "row %d", row)
	}

	for _, day := range allDays {
		assert.Equal(t, map[float64]int{7: 4}, best.ShiftTotals[day], "on %s", day)
	}
}

func TestGenerateRejectsShiftLength(t *testing.T) {
	engine := NewEngine(testRules(8), Options{Seed: 1}, discardLogger())
	_, err := engine.Generate(context.Background(), &Request{ShiftLength: 7})
	assert.Error(t, err)
}

func TestGenerateRejectsShortShiftLength(t *testing.T) {
	// 5 divides 40 but needs 8 working days, one more than the week holds.
	engine := NewEngine(testRules(8), Options{Seed: 1}, discardLogger())
	req := &Request{
		ShiftLength:         5,
		DailyShifts:         uniformDemand(map[float64]int{7: 8}),
		PreferredShiftOrder: []float64{7, 7, 7, 7, 7, 7, 7, 7},
	}
	_, err := engine.Generate(context.Background(), req)
	assert.Error(t, err)
}

func TestGenerateRejectsBadPreferredOrder(t *testing.T) {
	rules := &domain.BusinessRules{
		ShiftLength:       10,
		MinRestDayToMid:   9,
		MinRestEveToDay:   9,
		MinRestMidToMid:   9,
		MaxConsecutiveMid: 4,
	}
	req := &Request{
		ShiftLength:         10,
		DailyShifts:         uniformDemand(map[float64]int{7: 4}),
		PreferredShiftOrder: []float64{15, 7, 7, 7},
		RdoContiguous:       true,
	}

	engine := NewEngine(rules, Options{Seed: 1}, discardLogger())
	_, err := engine.Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPreferredOrder)
}

// deadlineAfterCalls reports no error for the first grace calls to Err and an
// expired deadline from then on, so the expiry lands between attempt launch
// and result collection without any timing dependence.
type deadlineAfterCalls struct {
	context.Context
	mu    sync.Mutex
	grace int
}

func (c *deadlineAfterCalls) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grace > 0 {
		c.grace--
		return nil
	}
	return context.DeadlineExceeded
}

func TestGenerateKeepsFinishedAttemptsOnTimeout(t *testing.T) {
	rules := &domain.BusinessRules{
		ShiftLength:       10,
		MinRestDayToMid:   9,
		MinRestEveToDay:   9,
		MinRestMidToMid:   9,
		MaxConsecutiveMid: 4,
	}
	req := &Request{
		ShiftLength:         10,
		DailyShifts:         uniformDemand(map[float64]int{7: 4}),
		PreferredShiftOrder: []float64{7, 7, 7, 7},
		RdoContiguous:       true,
	}

	engine := NewEngine(rules, Options{MaxAttempts: 2, Seed: 1}, discardLogger())

	// Both attempts launch inside the grace window; the deadline expires
	// before the final check. Their schedules must still come back.
	ctx := &deadlineAfterCalls{Context: context.Background(), grace: 2}
	result, err := engine.Generate(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.Schedules, 1)
	assert.Equal(t, 100, result.Schedules[0].Grade)
}

func TestGenerateHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &Request{
		ShiftLength:         10,
		DailyShifts:         uniformDemand(map[float64]int{7: 4}),
		PreferredShiftOrder: []float64{7, 7, 7, 7},
		RdoContiguous:       true,
	}
	rules := &domain.BusinessRules{ShiftLength: 10, MinRestDayToMid: 9,
		MinRestEveToDay: 9, MinRestMidToMid: 9, MaxConsecutiveMid: 4}

	engine := NewEngine(rules, Options{MaxAttempts: 2, Seed: 1}, discardLogger())
	_, err := engine.Generate(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssignPreferredOrderRetiresFailedRotation(t *testing.T) {
	s := newTestSchedule(uniformDemand(map[float64]int{7: 1, 15: 1}), 8, 2, testRules(8))
	s.data.pso = []float64{7, 7, 7, 7, 7}

	// Two lines share one rotation. The first fill takes every day shift;
	// the second line finds the quota gone, fails its round, and the
	// rotation retires instead of looping.
	for _, line := range s.lines {
		line.rotation = "SAT_SUN"
		line.assignOff(Saturday)
		line.assignOff(Sunday)
	}

	s.assignPreferredOrder(0)

	assert.True(t, s.lines[0].filled)
	assert.False(t, s.lines[1].filled)
	for _, day := range []Day{Monday, Tuesday, Wednesday, Thursday, Friday} {
		assert.Equal(t, At(7), s.lines[0].valueOn(day), "line 0 on %s", day)
		assert.Equal(t, Unassigned(), s.lines[1].valueOn(day), "line 1 on %s", day)
	}
}

func TestShiftsToAdd(t *testing.T) {
	even := &Request{ShiftLength: 10, DailyShifts: uniformDemand(map[float64]int{7: 4})}
	assert.Equal(t, 0, shiftsToAdd(even))

	uneven := &Request{ShiftLength: 10, DailyShifts: uniformDemand(map[float64]int{7: 4})}
	uneven.DailyShifts[Sunday] = map[float64]int{7: 2}
	assert.Equal(t, 2, shiftsToAdd(uneven))
}
