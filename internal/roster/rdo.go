package roster

import (
	"errors"
	"math"
)

// ErrImpossibleRdoDistribution is raised when the circulant solve produces a
// rotation count below the current minimum. It aborts the attempt; the caller
// re-solves with a relaxed minimum before giving up.
var ErrImpossibleRdoDistribution = errors.New("no feasible distribution of rostered days off")

// RdoPattern marks which offsets from a reference day are off. Exactly
// daysInRDO entries are 1.
type RdoPattern [7]int

// rdoPatternFor picks the pattern shape from the number of off days and
// whether they must be contiguous.
func rdoPatternFor(daysInRDO int, contiguous bool) RdoPattern {
	if daysInRDO == 3 {
		if contiguous {
			return RdoPattern{1, 1, 1, 0, 0, 0, 0}
		}
		return RdoPattern{1, 1, 0, 0, 1, 0, 0}
	}
	return RdoPattern{1, 1, 0, 0, 0, 0, 0}
}

// Rotation names, indexed by rotation offset. These match the day sets the
// circulant matrix assigns to each rotation: rotation c covers day (c-j) mod 7
// for every pattern offset j that is 1.
var (
	rdoPairNames = [7]string{
		"SAT_SUN", "SUN_MON", "MON_TUE", "TUE_WED", "WED_THU", "THU_FRI", "FRI_SAT",
	}
	rdoTripleContiguousNames = [7]string{
		"FRI_SAT_SUN", "SAT_SUN_MON", "SUN_MON_TUE", "MON_TUE_WED", "TUE_WED_THU",
		"WED_THU_FRI", "THU_FRI_SAT",
	}
	rdoTripleSplitNames = [7]string{
		"SAT_SUN_WED", "SUN_MON_THU", "MON_TUE_FRI", "TUE_WED_SAT", "WED_THU_SUN",
		"THU_FRI_MON", "FRI_SAT_TUE",
	}
)

func rotationNames(daysInRDO int, contiguous bool) [7]string {
	if daysInRDO == 3 {
		if contiguous {
			return rdoTripleContiguousNames
		}
		return rdoTripleSplitNames
	}
	return rdoPairNames
}

// RdoRotation is one named rotation of the RDO pattern together with the
// number of workers assigned to it.
type RdoRotation struct {
	Name    string
	Count   int
	OffDays []Day
}

// RdoDistribution partitions the crew across the seven rotations of the RDO
// pattern. Rotations are kept in offset order; the sum of counts equals the
// crew size.
type RdoDistribution struct {
	Rotations [7]RdoRotation
}

// offDaysOfRotation lists the days rotation c marks off, in week order.
func offDaysOfRotation(pattern RdoPattern, c int) []Day {
	var days []Day
	for _, day := range allDays {
		// day is off for rotation c iff pattern[(c-day) mod 7] == 1
		j := (c - int(day)%7 + 7) % 7
		if pattern[j] == 1 {
			days = append(days, day)
		}
	}
	return days
}

// solveRdoDistribution solves the 7x7 circulant system relating rotation
// counts to per-day off totals, rounds each count, and rejects the solution
// if any rounded count falls below minimum.
func solveRdoDistribution(pattern RdoPattern, offPerDay [7]int, names [7]string, minimum int) (*RdoDistribution, error) {
	// Row i is the off-total equation for day i: column (i+j) mod 7 gets
	// pattern[j].
	var m [7][7]float64
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			m[i][(i+j)%7] = float64(pattern[j])
		}
	}

	inv, ok := invert7(m)
	if !ok {
		return nil, ErrImpossibleRdoDistribution
	}

	dist := &RdoDistribution{}
	for c := 0; c < 7; c++ {
		x := 0.0
		for i := 0; i < 7; i++ {
			x += inv[c][i] * float64(offPerDay[i])
		}
		count := int(math.Round(x))
		if count < minimum {
			return nil, ErrImpossibleRdoDistribution
		}
		dist.Rotations[c] = RdoRotation{
			Name:    names[c],
			Count:   count,
			OffDays: offDaysOfRotation(pattern, c),
		}
	}

	return dist, nil
}

// invert7 inverts a 7x7 matrix by Gauss-Jordan elimination with partial
// pivoting. ok is false when the matrix is singular.
func invert7(m [7][7]float64) (inv [7][7]float64, ok bool) {
	// Augment with the identity.
	var a [7][14]float64
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			a[i][j] = m[i][j]
		}
		a[i][7+i] = 1
	}

	for col := 0; col < 7; col++ {
		pivot := col
		for row := col + 1; row < 7; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return inv, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		p := a[col][col]
		for j := 0; j < 14; j++ {
			a[col][j] /= p
		}
		for row := 0; row < 7; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 14; j++ {
				a[row][j] -= f * a[col][j]
			}
		}
	}

	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			inv[i][j] = a[i][7+j]
		}
	}
	return inv, true
}
