package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func (h *Handler) GetAllBreakRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.repository.GetAllBreakRules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取休息规则成功", rules)
}

func (h *Handler) CreateBreakRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BreakType          string `json:"breakType" validate:"required,oneof=大休 小休"`
		MinShiftMinutes    int32  `json:"minShiftMinutes" validate:"min=0"`
		RequiredCount      int32  `json:"requiredCount" validate:"required,min=1"`
		MinSpacingSlots    int32  `json:"minSpacingSlots" validate:"min=0"`
		ForbiddenEdgeSlots int32  `json:"forbiddenEdgeSlots" validate:"min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rule := &domain.BreakRule{
		BreakType:          domain.BreakType(req.BreakType),
		MinShiftMinutes:    req.MinShiftMinutes,
		RequiredCount:      req.RequiredCount,
		MinSpacingSlots:    req.MinSpacingSlots,
		ForbiddenEdgeSlots: req.ForbiddenEdgeSlots,
	}

	if err := h.repository.CreateBreakRule(rule); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "break_rules_break_type_min_shift_minutes_key":
				h.errorResponse(w, r, "相同班次时长下该类休息的规则已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建休息规则成功", rule)
}

func (h *Handler) UpdateBreakRule(w http.ResponseWriter, r *http.Request) {
	rule := r.Context().Value(BreakRuleCtx).(*domain.BreakRule)

	var req struct {
		BreakType          *string `json:"breakType" validate:"omitempty,oneof=大休 小休"`
		MinShiftMinutes    *int32  `json:"minShiftMinutes" validate:"omitempty,min=0"`
		RequiredCount      *int32  `json:"requiredCount" validate:"omitempty,min=1"`
		MinSpacingSlots    *int32  `json:"minSpacingSlots" validate:"omitempty,min=0"`
		ForbiddenEdgeSlots *int32  `json:"forbiddenEdgeSlots" validate:"omitempty,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.BreakType != nil {
		rule.BreakType = domain.BreakType(*req.BreakType)
	}
	if req.MinShiftMinutes != nil {
		rule.MinShiftMinutes = *req.MinShiftMinutes
	}
	if req.RequiredCount != nil {
		rule.RequiredCount = *req.RequiredCount
	}
	if req.MinSpacingSlots != nil {
		rule.MinSpacingSlots = *req.MinSpacingSlots
	}
	if req.ForbiddenEdgeSlots != nil {
		rule.ForbiddenEdgeSlots = *req.ForbiddenEdgeSlots
	}

	if err := h.repository.UpdateBreakRule(rule); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "break_rules_break_type_min_shift_minutes_key":
				h.errorResponse(w, r, "相同班次时长下该类休息的规则已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "规则信息已变更，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新休息规则成功", rule)
}

func (h *Handler) DeleteBreakRule(w http.ResponseWriter, r *http.Request) {
	rule := r.Context().Value(BreakRuleCtx).(*domain.BreakRule)

	if err := h.repository.DeleteBreakRule(rule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除休息规则成功", nil)
}
