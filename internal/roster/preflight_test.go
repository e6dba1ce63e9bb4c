package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferredOrderEmpty(t *testing.T) {
	req := &Request{ShiftLength: 8}
	assert.NoError(t, ValidatePreferredOrder(req, testRules(8)))
}

func TestValidatePreferredOrderShortShiftLength(t *testing.T) {
	// 5 hour shifts would need 8 positions, which no 7 day week can hold.
	req := &Request{
		ShiftLength:         5,
		PreferredShiftOrder: []float64{7, 7, 7, 7, 7, 7, 7, 7},
	}
	err := ValidatePreferredOrder(req, testRules(8))
	assert.ErrorIs(t, err, ErrInvalidPreferredOrder)
}

func TestValidatePreferredOrderLength(t *testing.T) {
	req := &Request{ShiftLength: 8, PreferredShiftOrder: []float64{7, 7, 7}}
	err := ValidatePreferredOrder(req, testRules(8))
	assert.ErrorIs(t, err, ErrInvalidPreferredOrder)
}

func TestValidatePreferredOrderValid(t *testing.T) {
	req := &Request{ShiftLength: 8, PreferredShiftOrder: []float64{15, 15, 15, 15, 7}}
	assert.NoError(t, ValidatePreferredOrder(req, testRules(8)))
}

func TestValidatePreferredOrderInsufficientRest(t *testing.T) {
	rules := testRules(8)
	rules.MinRestEveToDay = 9
	req := &Request{ShiftLength: 8, PreferredShiftOrder: []float64{15, 7, 7, 7, 7}}
	err := ValidatePreferredOrder(req, rules)
	require.ErrorIs(t, err, ErrInvalidPreferredOrder)
	assert.Contains(t, err.Error(), "insufficient rest")
}

func TestValidatePreferredOrderUndesirableMove(t *testing.T) {
	req := &Request{ShiftLength: 8, PreferredShiftOrder: []float64{7, 15, 15, 15, 15}}
	err := ValidatePreferredOrder(req, testRules(8))
	require.ErrorIs(t, err, ErrInvalidPreferredOrder)
	assert.Contains(t, err.Error(), "undesirable move")
}

func TestValidatePreferredOrderConsecutiveMids(t *testing.T) {
	rules := testRules(8)
	rules.MaxConsecutiveMid = 4
	req := &Request{ShiftLength: 8, PreferredShiftOrder: []float64{23, 23, 23, 23, 23}}
	err := ValidatePreferredOrder(req, rules)
	require.ErrorIs(t, err, ErrInvalidPreferredOrder)
	assert.Contains(t, err.Error(), "consecutive mid")

	rules.MaxConsecutiveMid = 5
	assert.NoError(t, ValidatePreferredOrder(req, rules))
}

func TestCheckLineClean(t *testing.T) {
	week := [7]ShiftValue{At(15), At(15), At(15), At(15), At(7), Off(), Off()}
	assert.Empty(t, CheckLine(week, 8, testRules(8)))
}

func TestCheckLineViolations(t *testing.T) {
	rules := testRules(8)
	rules.MinRestEveToDay = 9

	week := [7]ShiftValue{At(15), At(7), At(15), Off(), Off(), Off(), Off()}
	violations := CheckLine(week, 8, rules)
	require.Len(t, violations, 2)
	assert.Contains(t, violations[0], "insufficient rest between SUN and MON")
	assert.Contains(t, violations[1], "undesirable move between MON and TUE")
}

func TestCheckLineConsecutiveMids(t *testing.T) {
	week := [7]ShiftValue{At(23), At(23), At(23), At(23), At(23), At(23), Off()}
	violations := CheckLine(week, 8, testRules(8))
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "more than 5 consecutive mid shifts ending FRI")
}

func TestDetectOutliersTooFewValues(t *testing.T) {
	var dailyShifts [7]map[float64]int
	dailyShifts[Monday] = map[float64]int{7: 3, 15: 3}
	assert.Nil(t, DetectOutliers(dailyShifts))
}

func TestDetectOutliersUniform(t *testing.T) {
	assert.Nil(t, DetectOutliers(uniformDemand(map[float64]int{7: 3, 15: 2})))
}

func TestDetectOutliersFlagsSpike(t *testing.T) {
	dailyShifts := uniformDemand(map[float64]int{7: 2})
	dailyShifts[Sunday][15] = 20

	report := DetectOutliers(dailyShifts)
	require.NotNil(t, report)
	assert.Equal(t, OutlierReport{15: {Sunday: 20}}, report)
}
