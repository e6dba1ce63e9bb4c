package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttemptData(t *testing.T) {
	req := &Request{
		ShiftLength:   8,
		RdoContiguous: true,
	}
	demand := NewDemand(uniformDemand(map[float64]int{7: 2, 15: 3}))
	require.Equal(t, 35, demand.TotalInWeek())

	data, err := newAttemptData(req, demand, testRules(8))
	require.NoError(t, err)
	assert.Equal(t, 7, data.workers)
	assert.Equal(t, 2, data.daysInRDO)
	assert.Equal(t, 5, data.shiftsPerfWk)
	assert.Equal(t, [7]int{2, 2, 2, 2, 2, 2, 2}, data.offPerDay())
}

func TestNewAttemptDataIndivisible(t *testing.T) {
	req := &Request{ShiftLength: 8}
	demand := NewDemand(uniformDemand(map[float64]int{7: 1, 15: 1})) // 14 total

	_, err := newAttemptData(req, demand, testRules(8))
	assert.Error(t, err)
}

func TestSortShiftsByType(t *testing.T) {
	demand := NewDemand(uniformDemand(map[float64]int{7: 1, 9: 1, 15: 1, 17: 1, 23: 1}))
	byType := sortShiftsByType(demand, 8)

	// Catalog order is 23, 7, 9, 15, 17; evenings are front-inserted so the
	// latest start comes first.
	assert.Equal(t, []float64{17, 15}, byType[Monday][TypeEve])
	assert.Equal(t, []float64{7, 9}, byType[Monday][TypeDay])
	assert.Equal(t, []float64{23}, byType[Monday][TypeMid])
}
