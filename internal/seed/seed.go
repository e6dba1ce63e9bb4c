package seed

import (
	"log/slog"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
	"github.com/dmercier-mercurius/schedule-generate-oop/internal/repository"
)

// defaultBusinessRules are the rule sets a fresh deployment starts from.
// Rest minimums are hours, tuned for the two supported shift lengths.
var defaultBusinessRules = []*domain.BusinessRules{
	{
		ShiftLength:       8,
		MinRestDayToMid:   8,
		MinRestEveToDay:   8,
		MinRestMidToMid:   8,
		MaxConsecutiveMid: 5,
	},
	{
		ShiftLength:       10,
		MinRestDayToMid:   9,
		MinRestEveToDay:   9,
		MinRestMidToMid:   9,
		MaxConsecutiveMid: 4,
	},
}

// SeedBusinessRules writes the default rule sets, overwriting whatever is
// already stored for those shift lengths.
func SeedBusinessRules(r *repository.Repository) {
	cnt := 0
	for _, rules := range defaultBusinessRules {
		if err := r.UpsertBusinessRules(rules); err != nil {
			slog.Error("failed to upsert business rules", slog.Int("shiftLength", rules.ShiftLength), slog.String("error", err.Error()))
			continue
		}
		cnt++
	}
	slog.Info("business rules seeded", slog.Int("count", cnt))
}
