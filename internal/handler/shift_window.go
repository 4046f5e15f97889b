package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/utils"
)

func (h *Handler) GetAllShiftWindows(w http.ResponseWriter, r *http.Request) {
	windows, err := h.repository.GetAllShiftWindows()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次窗口成功", windows)
}

func (h *Handler) ReplaceShiftWindows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Windows []struct {
			Code      string `json:"code" validate:"required"`
			StartTime string `json:"startTime" validate:"required"`
			EndTime   string `json:"endTime" validate:"required"`
		} `json:"windows" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	windows := make([]*domain.ShiftWindow, 0, len(req.Windows))
	for _, win := range req.Windows {
		windows = append(windows, &domain.ShiftWindow{
			Code:      win.Code,
			StartTime: win.StartTime,
			EndTime:   win.EndTime,
		})
	}

	// 检查窗口定义是否合法
	if err := utils.ValidateShiftWindows(windows); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.ReplaceShiftWindows(windows); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shift_windows_code_key":
				h.errorResponse(w, r, "班次代码重复")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新班次窗口成功", windows)
}
