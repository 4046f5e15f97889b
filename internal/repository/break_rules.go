package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (r *Repository) GetAllBreakRules() ([]*domain.BreakRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, break_type, min_shift_minutes, required_count, min_spacing_slots, forbidden_edge_slots, created_at, version
		FROM break_rules
		ORDER BY break_type, min_shift_minutes
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]*domain.BreakRule, 0)
	for rows.Next() {
		rule := &domain.BreakRule{}
		dst := []any{&rule.ID, &rule.BreakType, &rule.MinShiftMinutes, &rule.RequiredCount, &rule.MinSpacingSlots, &rule.ForbiddenEdgeSlots, &rule.CreatedAt, &rule.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *Repository) GetBreakRule(id int64) (*domain.BreakRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT break_type, min_shift_minutes, required_count, min_spacing_slots, forbidden_edge_slots, created_at, version
		FROM break_rules
		WHERE id = $1
	`

	rule := &domain.BreakRule{
		ID: id,
	}

	dst := []any{&rule.BreakType, &rule.MinShiftMinutes, &rule.RequiredCount, &rule.MinSpacingSlots, &rule.ForbiddenEdgeSlots, &rule.CreatedAt, &rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *Repository) CreateBreakRule(rule *domain.BreakRule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO break_rules (break_type, min_shift_minutes, required_count, min_spacing_slots, forbidden_edge_slots)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{rule.BreakType, rule.MinShiftMinutes, rule.RequiredCount, rule.MinSpacingSlots, rule.ForbiddenEdgeSlots}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateBreakRule(rule *domain.BreakRule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE break_rules
		SET
			break_type = $1,
			min_shift_minutes = $2,
			required_count = $3,
			min_spacing_slots = $4,
			forbidden_edge_slots = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	params := []any{rule.BreakType, rule.MinShiftMinutes, rule.RequiredCount, rule.MinSpacingSlots, rule.ForbiddenEdgeSlots, rule.ID, rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&rule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBreakRule(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM break_rules WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
