package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// GetCoverageRule 返回在岗率规则，规则表中只维护一行
func (r *Repository) GetCoverageRule() (*domain.CoverageRule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, max_on_break, max_on_break_percent, created_at, version
		FROM coverage_rules
		ORDER BY id
		LIMIT 1
	`

	rule := &domain.CoverageRule{}
	dst := []any{&rule.ID, &rule.MaxOnBreak, &rule.MaxOnBreakPercent, &rule.CreatedAt, &rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *Repository) CreateCoverageRule(rule *domain.CoverageRule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO coverage_rules (max_on_break, max_on_break_percent)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, rule.MaxOnBreak, rule.MaxOnBreakPercent).Scan(&rule.ID, &rule.CreatedAt, &rule.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCoverageRule(rule *domain.CoverageRule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE coverage_rules
		SET
			max_on_break = $1,
			max_on_break_percent = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	params := []any{rule.MaxOnBreak, rule.MaxOnBreakPercent, rule.ID, rule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&rule.Version); err != nil {
		return err
	}

	return nil
}
