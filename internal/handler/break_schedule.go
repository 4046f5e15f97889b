package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/scheduler"
)

// buildScheduler 加载当前的窗口和规则配置，组装出本次请求使用的排班引擎
// 每次请求都重新组装，保证引擎看到的配置和数据库一致
func (h *Handler) buildScheduler() (*scheduler.Scheduler, error) {
	windows, err := h.repository.GetAllShiftWindows()
	if err != nil {
		return nil, err
	}

	rules, err := h.repository.GetAllBreakRules()
	if err != nil {
		return nil, err
	}

	coverageRule, err := h.repository.GetCoverageRule()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// 没有配置在岗率规则时 coverageRule 为 nil，引擎视为不限制
	return scheduler.New(h.grid, windows, rules, coverageRule), nil
}

func (h *Handler) GetBreakSchedule(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(ScheduleDateCtx).(time.Time)
	department := r.URL.Query().Get("department")

	engine, err := h.buildScheduler()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsByDate(date, department)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	assignments, err := h.repository.GetBreakAssignmentsByDate(date, department)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 每次加载排班时都做一轮漂移检测，新产生的警告立即落库
	existing, err := h.repository.GetBreakWarningsByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	newWarnings := engine.DetectWarnings(assignments, shifts, existing)
	if err := h.repository.CreateBreakWarnings(newWarnings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	warnings, err := h.repository.GetUnresolvedBreakWarningsByDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	coverage := engine.Summarize(shifts, assignments)

	h.successResponse(w, r, "获取休息排班成功", struct {
		Shifts      []*domain.Shift                `json:"shifts"`
		Assignments []*domain.BreakAssignment      `json:"assignments"`
		Coverage    scheduler.CoverageSnapshot     `json:"coverage"`
		Warnings    []*domain.BreakScheduleWarning `json:"warnings"`
	}{
		Shifts:      shifts,
		Assignments: assignments,
		Coverage:    coverage,
		Warnings:    warnings,
	})
}

func (h *Handler) ReplaceUserBreaks(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Breaks []struct {
			Slot      int32  `json:"slot" validate:"min=0"`
			BreakType string `json:"breakType" validate:"required,oneof=大休 小休"`
		} `json:"breaks" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	proposed := make([]scheduler.PlannedBreak, 0, len(req.Breaks))
	for _, b := range req.Breaks {
		proposed = append(proposed, scheduler.PlannedBreak{
			Slot:      int(b.Slot),
			BreakType: domain.BreakType(b.BreakType),
		})
	}

	engine, err := h.buildScheduler()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 校验不通过时一条都不写入，所有违规一次性返回
	result := engine.Validate(shift, proposed)
	if !result.OK {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "休息安排不满足约束",
			Data:    result,
		})
		return
	}

	assignments := make([]*domain.BreakAssignment, 0, len(proposed))
	for _, pb := range proposed {
		assignments = append(assignments, &domain.BreakAssignment{
			UserID:    shift.UserID,
			Date:      shift.Date,
			ShiftCode: shift.ShiftCode,
			Slot:      int32(pb.Slot),
			BreakType: pb.BreakType,
			CreatedBy: myInfo.Username,
		})
	}

	if err := h.repository.ReplaceBreakAssignments(shift, assignments); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次信息已变更，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "休息安排已更新", assignments)
}

func (h *Handler) ClearUserBreaks(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteBreakAssignmentsByUserAndDate(shift.UserID, shift.Date); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "休息安排已清空", nil)
}

func (h *Handler) PreviewDistribution(w http.ResponseWriter, r *http.Request) {
	date := r.Context().Value(ScheduleDateCtx).(time.Time)
	department := r.URL.Query().Get("department")

	engine, err := h.buildScheduler()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsByDate(date, department)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := engine.Distribute(shifts)

	if !result.Feasible {
		h.successResponse(w, r, "部分休息无法满足约束，请查看冲突详情", result)
		return
	}

	h.successResponse(w, r, "自动分配预览生成成功", result)
}

func (h *Handler) ApplyDistribution(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	date := r.Context().Value(ScheduleDateCtx).(time.Time)
	department := r.URL.Query().Get("department")

	engine, err := h.buildScheduler()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsByDate(date, department)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 分配是确定性的，重算的结果和预览一致
	result := engine.Distribute(shifts)

	shiftByUser := make(map[int64]*domain.Shift, len(shifts))
	for _, shift := range shifts {
		shiftByUser[shift.UserID] = shift
	}

	userIDs := make([]int64, 0, len(result.AssignmentsByUser))
	for userID := range result.AssignmentsByUser {
		userIDs = append(userIDs, userID)
	}
	slices.Sort(userIDs)

	type applyFailure struct {
		UserID int64  `json:"userID"`
		Reason string `json:"reason"`
	}

	// 每个助理一个事务，单个失败不影响其他人
	failures := make([]applyFailure, 0)
	for _, userID := range userIDs {
		shift := shiftByUser[userID]
		if shift == nil {
			continue
		}

		assignments := make([]*domain.BreakAssignment, 0, len(result.AssignmentsByUser[userID]))
		for _, pb := range result.AssignmentsByUser[userID] {
			assignments = append(assignments, &domain.BreakAssignment{
				UserID:    userID,
				Date:      date,
				ShiftCode: shift.ShiftCode,
				Slot:      int32(pb.Slot),
				BreakType: pb.BreakType,
				CreatedBy: myInfo.Username,
			})
		}

		if err := h.repository.ReplaceBreakAssignments(shift, assignments); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				failures = append(failures, applyFailure{UserID: userID, Reason: "班次信息已变更"})
			default:
				h.logInternalServerError(r, err)
				failures = append(failures, applyFailure{UserID: userID, Reason: "服务器内部错误"})
			}
		}
	}

	payload := struct {
		Result   *scheduler.DistributionResult `json:"result"`
		Failures []applyFailure                `json:"failures"`
	}{
		Result:   result,
		Failures: failures,
	}

	if len(failures) > 0 {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "自动分配仅部分应用",
			Data:    payload,
		})
		return
	}

	h.successResponse(w, r, "自动分配已应用", payload)
}
