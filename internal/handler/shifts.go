package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// knownShiftCode 检查班次代码是 OFF 或者在窗口表中有定义
func (h *Handler) knownShiftCode(code string) (bool, error) {
	if code == domain.ShiftCodeOff {
		return true, nil
	}

	windows, err := h.repository.GetAllShiftWindows()
	if err != nil {
		return false, err
	}

	for _, w := range windows {
		if w.Code == code {
			return true, nil
		}
	}

	return false, nil
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(ScheduleDateCtx).(time.Time)

	var req struct {
		UserID    int64  `json:"userID" validate:"required"`
		ShiftCode string `json:"shiftCode" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	known, err := h.knownShiftCode(req.ShiftCode)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !known {
		h.errorResponse(w, r, "未知的班次代码")
		return
	}

	shift := &domain.Shift{
		UserID:    req.UserID,
		Date:      date,
		ShiftCode: req.ShiftCode,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_user_id_date_key":
				h.errorResponse(w, r, "该助理当天已有班次")
			case "shifts_user_id_fkey":
				h.errorResponse(w, r, "用户不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "班次创建成功", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		ShiftCode string `json:"shiftCode" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	known, err := h.knownShiftCode(req.ShiftCode)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !known {
		h.errorResponse(w, r, "未知的班次代码")
		return
	}

	// 旧的休息安排保持不动，下次加载排班时会对不一致的安排产生警告
	shift.ShiftCode = req.ShiftCode

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次信息已变更，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "班次更新成功", shift)
}

func (h *Handler) RemoveShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShiftAndAssignments(shift.UserID, shift.Date); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "已将该助理移出当天班表", nil)
}
