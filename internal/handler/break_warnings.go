package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (h *Handler) GetBreakWarnings(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")

	// 带日期时返回当天的全部警告（含已处理的），不带日期时返回所有未处理的
	if dateParam != "" {
		date, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			h.errorResponse(w, r, "日期格式无效")
			return
		}

		warnings, err := h.repository.GetBreakWarningsByDate(date)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		h.successResponse(w, r, "获取警告列表成功", warnings)
		return
	}

	warnings, err := h.repository.GetUnresolvedBreakWarnings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取警告列表成功", warnings)
}

func (h *Handler) ResolveBreakWarning(w http.ResponseWriter, r *http.Request) {
	warning := r.Context().Value(BreakWarningCtx).(*domain.BreakScheduleWarning)

	// 重复处理同一条警告不算错误
	if warning.Resolved {
		h.successResponse(w, r, "该警告已处理", warning)
		return
	}

	if err := h.repository.ResolveBreakWarning(warning); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "警告信息已变更，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "警告已标记为已处理", warning)
}
