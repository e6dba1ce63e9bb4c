package repository

import (
	"context"
	"time"

	"github.com/dmercier-mercurius/schedule-generate-oop/internal/domain"
)

func (r *Repository) GetBusinessRulesByShiftLength(shiftLength int) (*domain.BusinessRules, error) {
	query := `
		SELECT min_rest_day_to_mid, min_rest_eve_to_day, min_rest_mid_to_mid, max_consecutive_mid, created_at, version
		FROM business_rules WHERE shift_length = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rules := &domain.BusinessRules{
		ShiftLength: shiftLength,
	}

	dst := []any{&rules.MinRestDayToMid, &rules.MinRestEveToDay, &rules.MinRestMidToMid, &rules.MaxConsecutiveMid, &rules.CreatedAt, &rules.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, shiftLength).Scan(dst...); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *Repository) GetAllBusinessRules() ([]*domain.BusinessRules, error) {
	query := `
		SELECT shift_length, min_rest_day_to_mid, min_rest_eve_to_day, min_rest_mid_to_mid, max_consecutive_mid, created_at, version
		FROM business_rules ORDER BY shift_length
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allRules := make([]*domain.BusinessRules, 0)
	for rows.Next() {
		rules := &domain.BusinessRules{}
		dst := []any{&rules.ShiftLength, &rules.MinRestDayToMid, &rules.MinRestEveToDay, &rules.MinRestMidToMid, &rules.MaxConsecutiveMid, &rules.CreatedAt, &rules.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		allRules = append(allRules, rules)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allRules, nil
}

func (r *Repository) UpsertBusinessRules(rules *domain.BusinessRules) error {
	query := `
		INSERT INTO business_rules (shift_length, min_rest_day_to_mid, min_rest_eve_to_day, min_rest_mid_to_mid, max_consecutive_mid)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (shift_length) DO UPDATE
		SET
			min_rest_day_to_mid = EXCLUDED.min_rest_day_to_mid,
			min_rest_eve_to_day = EXCLUDED.min_rest_eve_to_day,
			min_rest_mid_to_mid = EXCLUDED.min_rest_mid_to_mid,
			max_consecutive_mid = EXCLUDED.max_consecutive_mid,
			version = business_rules.version + 1
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{rules.ShiftLength, rules.MinRestDayToMid, rules.MinRestEveToDay, rules.MinRestMidToMid, rules.MaxConsecutiveMid}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rules.CreatedAt, &rules.Version); err != nil {
		return err
	}

	return nil
}
