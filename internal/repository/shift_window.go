package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (r *Repository) GetAllShiftWindows() ([]*domain.ShiftWindow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, code, start_time, end_time, created_at, version
		FROM shift_windows
		ORDER BY start_time, code
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]*domain.ShiftWindow, 0)
	for rows.Next() {
		w := &domain.ShiftWindow{}
		dst := []any{&w.ID, &w.Code, &w.StartTime, &w.EndTime, &w.CreatedAt, &w.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

// ReplaceShiftWindows 整表替换窗口配置，窗口表很小，没有必要做增量更新
func (r *Repository) ReplaceShiftWindows(windows []*domain.ShiftWindow) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_windows`); err != nil {
		return err
	}

	for _, w := range windows {
		query := `
			INSERT INTO shift_windows (code, start_time, end_time)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, version
		`
		if err := tx.QueryRowContext(ctx, query, w.Code, w.StartTime, w.EndTime).Scan(&w.ID, &w.CreatedAt, &w.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
