package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotaLedgerCommitRelease(t *testing.T) {
	d := NewDemand(uniformDemand(map[float64]int{7: 2, 15: 1}))
	l := newQuotaLedger(d)

	assert.Equal(t, 21, l.TotalMissing())
	assert.Equal(t, 2, l.Demand(Monday, 7))

	l.commit(Monday, 7)
	assert.Equal(t, 1, l.Assigned(Monday, 7))
	assert.Equal(t, 1, l.Missing(Monday, 7))
	assert.Equal(t, 2, l.Demand(Monday, 7))
	assert.Equal(t, 20, l.TotalMissing())

	l.release(Monday, 7)
	assert.Equal(t, 0, l.Assigned(Monday, 7))
	assert.Equal(t, 2, l.Missing(Monday, 7))
	assert.Equal(t, 21, l.TotalMissing())
}

func TestQuotaLedgerForceCommit(t *testing.T) {
	d := NewDemand(uniformDemand(map[float64]int{7: 1}))
	l := newQuotaLedger(d)

	l.commit(Monday, 7)
	assert.Equal(t, 0, l.Missing(Monday, 7))
	assert.Equal(t, 0, l.QuotaRelaxed())

	// A relaxed commit raises demand alongside the assignment, so nothing
	// shows up as missing afterwards.
	l.forceCommit(Monday, 7)
	assert.Equal(t, 2, l.Assigned(Monday, 7))
	assert.Equal(t, 2, l.Demand(Monday, 7))
	assert.Equal(t, 0, l.Missing(Monday, 7))
	assert.Equal(t, 1, l.QuotaRelaxed())
}

func TestQuotaLedgerHas(t *testing.T) {
	d := NewDemand(uniformDemand(map[float64]int{7: 1}))
	l := newQuotaLedger(d)

	assert.True(t, l.Has(Monday, 7))
	assert.False(t, l.Has(Monday, 9))
}

func TestMissingShiftsOn(t *testing.T) {
	d := NewDemand(uniformDemand(map[float64]int{23: 1, 7: 1, 15: 1}))
	l := newQuotaLedger(d)

	assert.Equal(t, []float64{23, 7, 15}, l.missingShiftsOn(Monday))

	l.commit(Monday, 7)
	assert.Equal(t, []float64{23, 15}, l.missingShiftsOn(Monday))
}
