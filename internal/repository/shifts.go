package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (r *Repository) GetShiftsByDate(date time.Time, department string) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT s.id, s.user_id, s.date, s.shift_code, s.created_at, s.version
		FROM shifts s
		JOIN users u ON s.user_id = u.id
		WHERE s.date = $1
		ORDER BY s.user_id
	`
	args := []any{date}

	if department != "" {
		query = `
			SELECT s.id, s.user_id, s.date, s.shift_code, s.created_at, s.version
			FROM shifts s
			JOIN users u ON s.user_id = u.id
			WHERE s.date = $1 AND u.department = $2
			ORDER BY s.user_id
		`
		args = append(args, department)
	}

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.UserID, &shift.Date, &shift.ShiftCode, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByUserAndDate(userID int64, date time.Time) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, shift_code, created_at, version
		FROM shifts
		WHERE user_id = $1 AND date = $2
	`

	shift := &domain.Shift{
		UserID: userID,
		Date:   date,
	}

	dst := []any{&shift.ID, &shift.ShiftCode, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, userID, date).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (user_id, date, shift_code)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{shift.UserID, shift.Date, shift.ShiftCode}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE shifts
		SET
			shift_code = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	params := []any{shift.ShiftCode, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

// DeleteShiftAndAssignments 把助理从某天的班表中移除
// 休息安排一并删掉，避免留下孤儿记录
func (r *Repository) DeleteShiftAndAssignments(userID int64, date time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM break_assignments WHERE user_id = $1 AND date = $2`, userID, date); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE user_id = $1 AND date = $2`, userID, date); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
