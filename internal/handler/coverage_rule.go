package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (h *Handler) GetCoverageRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.repository.GetCoverageRule()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 没有配置时不限制同时休息的人数
			h.successResponse(w, r, "尚未配置在岗率规则", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取在岗率规则成功", rule)
}

func (h *Handler) UpdateCoverageRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MaxOnBreak        *int32 `json:"maxOnBreak" validate:"omitempty,min=0"`
		MaxOnBreakPercent *int32 `json:"maxOnBreakPercent" validate:"omitempty,min=0,max=100"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rule, err := h.repository.GetCoverageRule()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 第一次配置时直接创建
			rule = &domain.CoverageRule{}
			if req.MaxOnBreak != nil {
				rule.MaxOnBreak = *req.MaxOnBreak
			}
			if req.MaxOnBreakPercent != nil {
				rule.MaxOnBreakPercent = *req.MaxOnBreakPercent
			}
			if err := h.repository.CreateCoverageRule(rule); err != nil {
				h.internalServerError(w, r, err)
				return
			}
			h.successResponse(w, r, "在岗率规则配置成功", rule)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if req.MaxOnBreak != nil {
		rule.MaxOnBreak = *req.MaxOnBreak
	}
	if req.MaxOnBreakPercent != nil {
		rule.MaxOnBreakPercent = *req.MaxOnBreakPercent
	}

	if err := h.repository.UpdateCoverageRule(rule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "规则信息已变更，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新在岗率规则成功", rule)
}
