package roster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformDemand(shifts map[float64]int) [7]map[float64]int {
	var perDay [7]map[float64]int
	for i := range perDay {
		perDay[i] = make(map[float64]int, len(shifts))
		for shift, quantity := range shifts {
			perDay[i][shift] = quantity
		}
	}
	return perDay
}

func TestNewDemandCatalogOrder(t *testing.T) {
	perDay := uniformDemand(map[float64]int{7: 1, 23: 2, 0: 1, 15: 1})
	d := NewDemand(perDay)

	// Catalog runs on the wall clock starting at 23:00, overnight mids first.
	assert.Equal(t, []float64{23, 0, 7, 15}, d.Shifts(Monday))
	assert.Equal(t, 5, d.TotalOnDay(Monday))
	assert.Equal(t, 35, d.TotalInWeek())
}

func TestNewDemandDropsZeroQuantities(t *testing.T) {
	perDay := uniformDemand(map[float64]int{7: 2, 9: 0})
	d := NewDemand(perDay)

	assert.False(t, d.Has(Monday, 9))
	assert.Equal(t, []float64{7}, d.Shifts(Monday))
}

func TestDemandCloneIsolation(t *testing.T) {
	d := NewDemand(uniformDemand(map[float64]int{7: 1}))
	clone := d.Clone()
	clone.add(Monday, 7)

	assert.Equal(t, 2, clone.Required(Monday, 7))
	assert.Equal(t, 1, d.Required(Monday, 7))
}

func TestAddToBusiestShifts(t *testing.T) {
	perDay := uniformDemand(map[float64]int{7: 2, 15: 1})
	perDay[Sunday] = map[float64]int{7: 1}
	perDay[Saturday] = map[float64]int{7: 1}
	d := NewDemand(perDay)
	before := d.TotalInWeek()

	d.addToBusiestShifts(3, 8, rand.New(rand.NewSource(1)))

	assert.Equal(t, before+3, d.TotalInWeek())

	// The padding lands on weekdays only.
	assert.Equal(t, 1, d.Required(Sunday, 7))
	assert.Equal(t, 1, d.Required(Saturday, 7))

	added := 0
	for _, day := range weekdays {
		added += d.TotalOnDay(day) - 3
	}
	assert.Equal(t, 3, added)
}

func TestAddToLeastLoadedDays(t *testing.T) {
	perDay := uniformDemand(map[float64]int{7: 2})
	perDay[Sunday] = map[float64]int{7: 1}
	d := NewDemand(perDay)
	require.Equal(t, 13, d.TotalInWeek())

	d.addToLeastLoadedDays(2)

	// Sunday starts one short and stays the least loaded after the first
	// top-up, so both land there.
	assert.Equal(t, 3, d.Required(Sunday, 7))
	assert.Equal(t, 15, d.TotalInWeek())
}
