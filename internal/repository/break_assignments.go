package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (r *Repository) GetBreakAssignmentsByDate(date time.Time, department string) ([]*domain.BreakAssignment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ba.id, ba.user_id, ba.date, ba.shift_code, ba.slot, ba.break_type, ba.created_by, ba.created_at, ba.version
		FROM break_assignments ba
		JOIN users u ON ba.user_id = u.id
		WHERE ba.date = $1
		ORDER BY ba.user_id, ba.slot
	`
	args := []any{date}

	if department != "" {
		query = `
			SELECT ba.id, ba.user_id, ba.date, ba.shift_code, ba.slot, ba.break_type, ba.created_by, ba.created_at, ba.version
			FROM break_assignments ba
			JOIN users u ON ba.user_id = u.id
			WHERE ba.date = $1 AND u.department = $2
			ORDER BY ba.user_id, ba.slot
		`
		args = append(args, department)
	}

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.BreakAssignment, 0)
	for rows.Next() {
		ba := &domain.BreakAssignment{}
		dst := []any{&ba.ID, &ba.UserID, &ba.Date, &ba.ShiftCode, &ba.Slot, &ba.BreakType, &ba.CreatedBy, &ba.CreatedAt, &ba.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, ba)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// ReplaceBreakAssignments 整体替换一个助理当天的休息安排
// 先对班次行做版本号自增，这一步既是乐观锁校验也是行锁，
// 能把同一班次上的并发替换串行化；版本不匹配时返回 sql.ErrNoRows
func (r *Repository) ReplaceBreakAssignments(shift *domain.Shift, assignments []*domain.BreakAssignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts
		SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, shift.ID, shift.Version).Scan(&shift.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM break_assignments WHERE user_id = $1 AND date = $2`, shift.UserID, shift.Date); err != nil {
		return err
	}

	for _, ba := range assignments {
		query = `
			INSERT INTO break_assignments (user_id, date, shift_code, slot, break_type, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, version
		`
		params := []any{ba.UserID, ba.Date, ba.ShiftCode, ba.Slot, ba.BreakType, ba.CreatedBy}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&ba.ID, &ba.CreatedAt, &ba.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBreakAssignmentsByUserAndDate(userID int64, date time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM break_assignments WHERE user_id = $1 AND date = $2
	`

	_, err := r.dbpool.ExecContext(ctx, query, userID, date)
	if err != nil {
		return err
	}

	return nil
}
