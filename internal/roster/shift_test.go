package roster

import (
	"testing"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testRules(shiftLength int) *domain.BusinessRules {
	return &domain.BusinessRules{
		ShiftLength:       shiftLength,
		MinRestDayToMid:   8,
		MinRestEveToDay:   8,
		MinRestMidToMid:   8,
		MaxConsecutiveMid: 5,
	}
}

func TestClassifyEightHour(t *testing.T) {
	cases := []struct {
		start float64
		want  ShiftType
	}{
		{3, TypeMid},
		{3.5, TypeDay},
		{7, TypeDay},
		{11, TypeDay},
		{11.5, TypeEve},
		{15, TypeEve},
		{19, TypeEve},
		{19.5, TypeMid},
		{23, TypeMid},
		{0, TypeMid},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(At(c.start), 8), "start %.2f", c.start)
	}
}

func TestClassifyTenHour(t *testing.T) {
	cases := []struct {
		start float64
		want  ShiftType
	}{
		{2, TypeMid},
		{2.5, TypeDay},
		{12, TypeDay},
		{12.5, TypeEve},
		{20, TypeEve},
		{20.5, TypeMid},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(At(c.start), 10), "start %.2f", c.start)
	}
}

func TestClassifyNonWorking(t *testing.T) {
	assert.Equal(t, TypeRDO, Classify(Off(), 8))
	assert.Equal(t, TypeUnassigned, Classify(Unassigned(), 8))
}

func TestSufficientRestNeutralNeighbours(t *testing.T) {
	rules := testRules(8)
	assert.True(t, SufficientRest(Off(), At(7), 8, rules))
	assert.True(t, SufficientRest(At(7), Off(), 8, rules))
	assert.True(t, SufficientRest(Unassigned(), At(23), 8, rules))
}

func TestSufficientRestDayStarts(t *testing.T) {
	rules := testRules(8)

	// Later start the next day always gives enough turnaround.
	assert.True(t, SufficientRest(At(7), At(9), 8, rules))

	// Same start wraps a full day: 24h gap, 16h rest.
	assert.True(t, SufficientRest(At(7), At(7), 8, rules))

	// Earlier start the next day still clears the default 8h floor.
	assert.True(t, SufficientRest(At(9), At(7), 8, rules))
}

func TestSufficientRestEveToDay(t *testing.T) {
	// 15:00 to 07:00 is a 16h gap, exactly 8h of rest on an 8h shift.
	assert.True(t, SufficientRest(At(15), At(7), 8, testRules(8)))

	strict := testRules(8)
	strict.MinRestEveToDay = 9
	assert.False(t, SufficientRest(At(15), At(7), 8, strict))
}

func TestSufficientRestDayToMidEarlyStart(t *testing.T) {
	rules := testRules(8)

	// A 05:30 day start can never precede a mid on an 8h roster.
	assert.False(t, SufficientRest(At(5.5), At(23), 8, rules))

	// 06:00 clears the early-start cutoff and has 9h of rest.
	assert.True(t, SufficientRest(At(6), At(23), 8, rules))
}

func TestSufficientRestOvernightStarts(t *testing.T) {
	rules := testRules(8)

	// Two 23:00 mids back to back: 24h gap, 16h rest.
	assert.True(t, SufficientRest(At(23), At(23), 8, rules))

	// A 02:00 start belongs to the night that began the previous day, so
	// it never restricts a late predecessor.
	assert.True(t, SufficientRest(At(23), At(2), 8, rules))
}

func TestDesirableMove(t *testing.T) {
	cases := []struct {
		name        string
		prev, next  float64
		shiftLength float64
		want        bool
	}{
		{"eve to day", 15, 7, 8, true},
		{"eve to eve", 15, 15, 8, true},
		{"eve to mid", 15, 23, 8, false},
		{"day to day", 7, 7, 8, true},
		{"day to mid", 7, 23, 8, true},
		{"day to eve", 7, 15, 8, false},
		{"mid to mid", 23, 23, 8, true},
		{"mid to day short", 23, 7, 8, false},
		{"mid to day long", 23, 7, 10, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DesirableMove(At(c.prev), At(c.next), c.shiftLength))
		})
	}

	assert.True(t, DesirableMove(Off(), At(23), 8))
	assert.True(t, DesirableMove(At(23), Unassigned(), 8))
}
