package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// CreateBreakWarnings 批量写入警告
// 靠唯一索引跳过已存在的签名，和检测逻辑一起保证幂等
func (r *Repository) CreateBreakWarnings(warnings []*domain.BreakScheduleWarning) error {
	if len(warnings) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, w := range warnings {
		query := `
			INSERT INTO break_warnings (user_id, date, warning_type, old_shift_code, new_shift_code, message)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT ON CONSTRAINT break_warnings_signature_key DO NOTHING
		`
		params := []any{w.UserID, w.Date, w.WarningType, w.OldShiftCode, w.NewShiftCode, w.Message}
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetBreakWarningsByDate(date time.Time) ([]*domain.BreakScheduleWarning, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, date, warning_type, old_shift_code, new_shift_code, message, resolved, created_at, version
		FROM break_warnings
		WHERE date = $1
		ORDER BY user_id, id
	`

	return r.queryBreakWarnings(ctx, query, date)
}

func (r *Repository) GetUnresolvedBreakWarningsByDate(date time.Time) ([]*domain.BreakScheduleWarning, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, date, warning_type, old_shift_code, new_shift_code, message, resolved, created_at, version
		FROM break_warnings
		WHERE date = $1 AND resolved = FALSE
		ORDER BY user_id, id
	`

	return r.queryBreakWarnings(ctx, query, date)
}

func (r *Repository) GetUnresolvedBreakWarnings() ([]*domain.BreakScheduleWarning, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, date, warning_type, old_shift_code, new_shift_code, message, resolved, created_at, version
		FROM break_warnings
		WHERE resolved = FALSE
		ORDER BY date, user_id, id
	`

	return r.queryBreakWarnings(ctx, query)
}

func (r *Repository) queryBreakWarnings(ctx context.Context, query string, args ...any) ([]*domain.BreakScheduleWarning, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	warnings := make([]*domain.BreakScheduleWarning, 0)
	for rows.Next() {
		w := &domain.BreakScheduleWarning{}
		dst := []any{&w.ID, &w.UserID, &w.Date, &w.WarningType, &w.OldShiftCode, &w.NewShiftCode, &w.Message, &w.Resolved, &w.CreatedAt, &w.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		warnings = append(warnings, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return warnings, nil
}

func (r *Repository) GetBreakWarningByID(id int64) (*domain.BreakScheduleWarning, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT user_id, date, warning_type, old_shift_code, new_shift_code, message, resolved, created_at, version
		FROM break_warnings
		WHERE id = $1
	`

	w := &domain.BreakScheduleWarning{
		ID: id,
	}

	dst := []any{&w.UserID, &w.Date, &w.WarningType, &w.OldShiftCode, &w.NewShiftCode, &w.Message, &w.Resolved, &w.CreatedAt, &w.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return w, nil
}

func (r *Repository) ResolveBreakWarning(w *domain.BreakScheduleWarning) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE break_warnings
		SET
			resolved = TRUE,
			version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, w.ID, w.Version).Scan(&w.Version); err != nil {
		return err
	}

	w.Resolved = true

	return nil
}
