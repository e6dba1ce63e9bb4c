package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
)

var ErrNoSchedule = errors.New("no attempt produced a schedule")

// Options tunes the generation loop. Zero values fall back to the defaults
// the engine was designed around.
type Options struct {
	MaxAttempts  int
	TopSchedules int
	Seed         int64
}

const (
	defaultMaxAttempts = 4
	defaultTopPlain    = 1
	defaultTopPerturb  = 3
)

// Engine generates weekly rosters for a request under one set of business
// rules. Attempts are independent and run concurrently; each gets its own
// demand copy, adjacency index and random source.
type Engine struct {
	rules  *domain.BusinessRules
	opts   Options
	logger *slog.Logger
}

func NewEngine(rules *domain.BusinessRules, opts Options, logger *slog.Logger) *Engine {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Engine{rules: rules, opts: opts, logger: logger}
}

// GeneratedSchedule is one graded roster. Grid rows follow the rotation
// order of the RDO distribution; Rotations names each row's rotation.
type GeneratedSchedule struct {
	Grid                [][7]ShiftValue
	Rotations           []string
	ShiftTotals         [7]map[float64]int
	Grade               int
	DesirabilityRelaxed int
	QuotaRelaxed        int
	Unresolved          int
}

// Result collects the best schedules across all attempts, best grade first.
type Result struct {
	Schedules []GeneratedSchedule
	Attempts  int
}

// Generate runs up to MaxAttempts independent attempts and keeps the top
// schedules by grade. When the weekly demand does not divide evenly across
// workers, each attempt perturbs its own demand copy first and the result
// keeps more alternatives so a planner can choose where the padding landed.
func (e *Engine) Generate(ctx context.Context, req *Request) (*Result, error) {
	if req.ShiftLength <= 0 || 40%req.ShiftLength != 0 {
		return nil, fmt.Errorf("shift length %d does not divide a 40 hour week", req.ShiftLength)
	}
	if perWorker := 40 / req.ShiftLength; perWorker > 7 {
		return nil, fmt.Errorf("shift length %d needs %d working days, more than a week holds",
			req.ShiftLength, perWorker)
	}
	if err := ValidatePreferredOrder(req, e.rules); err != nil {
		return nil, err
	}

	extra := shiftsToAdd(req)
	topK := e.opts.TopSchedules
	if topK <= 0 {
		topK = defaultTopPlain
		if extra > 0 {
			topK = defaultTopPerturb
		}
	}

	var (
		mu        sync.Mutex
		schedules []GeneratedSchedule
		wg        sync.WaitGroup
	)

	for attempt := 0; attempt < e.opts.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()
			generated, err := e.runAttempt(req, attempt, extra)
			if err != nil {
				e.logger.Warn("roster attempt failed",
					slog.Int("attempt", attempt), slog.String("error", err.Error()))
				return
			}
			e.logger.Info("roster attempt finished",
				slog.Int("attempt", attempt), slog.Int("grade", generated.Grade),
				slog.Int("unresolved", generated.Unresolved))
			mu.Lock()
			schedules = append(schedules, *generated)
			mu.Unlock()
		}(attempt)
	}
	wg.Wait()

	// A deadline that expired mid-run must not throw away attempts that
	// already finished; the context error only matters when nothing landed.
	if len(schedules) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoSchedule
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return schedules[i].Grade > schedules[j].Grade
	})
	if len(schedules) > topK {
		schedules = schedules[:topK]
	}
	return &Result{Schedules: schedules, Attempts: e.opts.MaxAttempts}, nil
}

func (e *Engine) runAttempt(req *Request, attempt, extra int) (*GeneratedSchedule, error) {
	demand := NewDemand(req.DailyShifts)
	if extra > 0 {
		rng := rand.New(rand.NewSource(e.opts.Seed + int64(attempt)))
		if attempt%2 == 0 {
			demand.addToBusiestShifts(extra, float64(req.ShiftLength), rng)
		} else {
			demand.addToLeastLoadedDays(extra)
		}
	}

	data, err := newAttemptData(req, demand, e.rules)
	if err != nil {
		return nil, err
	}

	pattern := rdoPatternFor(data.daysInRDO, req.RdoContiguous)
	names := rotationNames(data.daysInRDO, req.RdoContiguous)
	dist, err := solveRdoDistribution(pattern, data.offPerDay(), names, 1)
	if errors.Is(err, ErrImpossibleRdoDistribution) {
		dist, err = solveRdoDistribution(pattern, data.offPerDay(), names, 0)
	}
	if err != nil {
		return nil, err
	}

	s := newSchedule(data, dist)
	s.run(attempt)
	return s.result(), nil
}

// schedule is one attempt's working state.
type schedule struct {
	data   *attemptData
	ledger *QuotaLedger
	lines  []*ShiftLine
	dist   *RdoDistribution

	desirabilityRelaxed int
	unresolved          int
}

func newSchedule(data *attemptData, dist *RdoDistribution) *schedule {
	s := &schedule{
		data:   data,
		ledger: newQuotaLedger(data.demand),
		dist:   dist,
	}
	s.lines = make([]*ShiftLine, data.workers)
	for row := range s.lines {
		s.lines[row] = newShiftLine(row, data, s)
	}
	return s
}

// run executes the assignment phases in order and grades the outcome.
func (s *schedule) run(attempt int) {
	s.assignOff()
	s.assignPreferredOrder(attempt)
	s.seedAndPropagate()
	s.assignDesiredAroundOff()
	s.fillRemaining(false, false)
	s.markFilled()
	s.repairBySwapping(false)

	if s.countOpen() > 0 {
		before := s.countOpen()
		s.fillRemaining(true, false)
		s.repairBySwapping(true)
		s.desirabilityRelaxed = before - s.countOpen()
	}
	if s.countOpen() > 0 {
		s.fillRemaining(true, true)
		s.repairBySwapping(true)
	}
	s.unresolved = s.countOpen()
}

// assignOff deals the RDO rotations out across the rows in offset order.
func (s *schedule) assignOff() {
	row := 0
	for _, rotation := range s.dist.Rotations {
		for n := 0; n < rotation.Count; n++ {
			line := s.lines[row]
			line.rotation = rotation.Name
			for _, day := range rotation.OffDays {
				line.assignOff(day)
			}
			row++
		}
	}
}

// assignPreferredOrder fills lines with the preferred shift order, one line
// per rotation per round. A rotation drops out of the rounds once all its
// lines are filled or a fill fails; the phase ends when no rotation is left
// placing anything.
func (s *schedule) assignPreferredOrder(attempt int) {
	byRotation := make(map[string][]*ShiftLine)
	var order []string
	for _, line := range s.lines {
		if _, ok := byRotation[line.rotation]; !ok {
			order = append(order, line.rotation)
		}
		byRotation[line.rotation] = append(byRotation[line.rotation], line)
	}

	// Quota only shrinks during this phase, so a rotation that failed once
	// is retired for the remaining rounds.
	done := make(map[string]bool)
	for progress := true; progress; {
		progress = false
		for _, rotation := range order {
			if done[rotation] {
				continue
			}
			var next *ShiftLine
			for _, line := range byRotation[rotation] {
				if !line.filled {
					next = line
					break
				}
			}
			if next == nil {
				done[rotation] = true
				continue
			}
			if next.fillPreferredOrder(attempt) {
				progress = true
			} else {
				done[rotation] = true
			}
		}
	}
}

// seedAndPropagate gives every open day its initial candidate set, then runs
// the cascades day by day so exhausted shifts drop out and singletons commit.
func (s *schedule) seedAndPropagate() {
	for _, line := range s.lines {
		line.seedCandidates()
	}
	for _, day := range allDays {
		s.verticalCascade(day)
	}
}

// verticalCascade refreshes every line's candidates on one day, committing
// and cascading wherever a set collapses to a single shift.
func (s *schedule) verticalCascade(day Day) {
	for _, line := range s.lines {
		if line.updateCandidatesOnDay(day) {
			line.commitSingleton(day)
			line.horizontalCascade(day)
		}
	}
}

// assignDesiredAroundOff places mid shifts against the off block. With eight
// hour shifts a mid belongs on the day before the block; with longer shifts
// the rest math wants it after instead.
func (s *schedule) assignDesiredAroundOff() {
	if s.data.shiftLength == 8 {
		for _, line := range s.lines {
			line.assignOnEmptyBeforeConsecutiveOff(TypeMid)
		}
		s.fixpoint(func(l *ShiftLine) bool { return l.assignOnEmptyBeforeShiftOfType(TypeMid) })
		s.fixpoint(func(l *ShiftLine) bool { return l.replaceBeforeShiftOfSameType(TypeMid) })
		return
	}
	for _, line := range s.lines {
		line.assignOnEmptyAfterConsecutiveOff(TypeMid)
	}
	s.fixpoint(func(l *ShiftLine) bool { return l.assignOnEmptyAfterShiftOfType(TypeMid) })
}

func (s *schedule) fixpoint(step func(*ShiftLine) bool) {
	for progress := true; progress; {
		progress = false
		for _, line := range s.lines {
			if step(line) {
				progress = true
			}
		}
	}
}

// fillRemaining sweeps the week day by day. On each day the sweep starts at
// the line whose post-RDO anchor is that day, so fresh lines get first pick,
// and tries each open line's candidates in ascending start order.
func (s *schedule) fillRemaining(ignoreDesirable, relaxQuota bool) {
	for _, day := range allDays {
		start := 0
		for i, line := range s.lines {
			if anchor, ok := line.dayAfterConsecutiveOff(); ok && anchor == day {
				start = i
				break
			}
		}
		for k := 0; k < len(s.lines); k++ {
			line := s.lines[(start+k)%len(s.lines)]
			slot := line.slots[day]
			if !slot.open() {
				continue
			}
			candidates := slot.Candidates
			if relaxQuota {
				candidates = s.data.demand.Shifts(day)
			}
			for _, shift := range candidates {
				opts := assignOptions{ignoreDesirable: ignoreDesirable, relaxQuota: relaxQuota}
				if line.assignShift(day, shift, opts) == AssignCommitted {
					break
				}
			}
		}
	}
}

func (s *schedule) markFilled() {
	for _, line := range s.lines {
		line.filled = line.complete()
	}
}

// repairBySwapping keeps trading runs of days between lines until a full
// pass resolves nothing more.
func (s *schedule) repairBySwapping(ignoreDesirable bool) {
	for progress := true; progress; {
		progress = false
		for _, line := range s.lines {
			for _, day := range line.openDays() {
				for _, shift := range s.ledger.missingShiftsOn(day) {
					if line.swapRepair(day, shift, +1, ignoreDesirable) ||
						line.swapRepair(day, shift, -1, ignoreDesirable) {
						progress = true
						break
					}
				}
			}
		}
	}
	s.markFilled()
}

func (s *schedule) countOpen() int {
	open := 0
	for _, line := range s.lines {
		open += len(line.openDays())
	}
	return open
}

// result snapshots the schedule into its graded, immutable form.
func (s *schedule) result() *GeneratedSchedule {
	out := &GeneratedSchedule{
		Grade:               s.grade(),
		DesirabilityRelaxed: s.desirabilityRelaxed,
		QuotaRelaxed:        s.ledger.QuotaRelaxed(),
		Unresolved:          s.unresolved,
	}
	for _, line := range s.lines {
		var row [7]ShiftValue
		for _, day := range allDays {
			row[day] = line.valueOn(day)
		}
		out.Grid = append(out.Grid, row)
		out.Rotations = append(out.Rotations, line.rotation)
	}
	for _, day := range allDays {
		out.ShiftTotals[day] = make(map[float64]int)
		for _, shift := range s.data.demand.Shifts(day) {
			out.ShiftTotals[day][shift] = s.ledger.Assigned(day, shift)
		}
	}
	return out
}

// grade scores a finished attempt out of 100. Concessions cost points in
// proportion to how much they bend the request.
func (s *schedule) grade() int {
	return 100 - 2*s.desirabilityRelaxed - 5*s.ledger.QuotaRelaxed() - 10*s.unresolved
}
