package scheduler_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/scheduler"
)

func testGrid(t *testing.T) *scheduler.IntervalGrid {
	t.Helper()

	grid, err := scheduler.NewIntervalGrid(9, 21, 15)
	require.NoError(t, err)

	return grid
}

func testWindows() []*domain.ShiftWindow {
	return []*domain.ShiftWindow{
		{ID: 1, Code: "AM", StartTime: "09:00:00", EndTime: "17:00:00"},
		{ID: 2, Code: "PM", StartTime: "13:00:00", EndTime: "21:00:00"},
		{ID: 3, Code: "BET", StartTime: "11:00:00", EndTime: "19:00:00"},
		{ID: 4, Code: "EV", StartTime: "17:00:00", EndTime: "21:00:00"},
	}
}

func testRules() []*domain.BreakRule {
	return []*domain.BreakRule{
		{ID: 1, BreakType: domain.BreakTypeFull, MinShiftMinutes: 420, RequiredCount: 1, MinSpacingSlots: 8, ForbiddenEdgeSlots: 4},
		{ID: 2, BreakType: domain.BreakTypeHalf, MinShiftMinutes: 240, RequiredCount: 1, MinSpacingSlots: 8, ForbiddenEdgeSlots: 4},
		{ID: 3, BreakType: domain.BreakTypeHalf, MinShiftMinutes: 420, RequiredCount: 2, MinSpacingSlots: 8, ForbiddenEdgeSlots: 4},
	}
}

func testEngine(t *testing.T) *scheduler.Scheduler {
	t.Helper()

	return scheduler.New(testGrid(t), testWindows(), testRules(), &domain.CoverageRule{ID: 1, MaxOnBreak: 2})
}

func testDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestScheduler_Distribute_StaggersAgents(t *testing.T) {
	engine := scheduler.New(testGrid(t), testWindows(), testRules(), &domain.CoverageRule{ID: 1, MaxOnBreak: 1})

	shifts := []*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "AM"},
		{ID: 2, UserID: 2, ShiftCode: "AM"},
	}

	result := engine.Distribute(shifts)

	assert.True(t, result.Feasible)
	assert.Empty(t, result.Violations)
	require.Len(t, result.AssignmentsByUser, 2)
	assert.Equal(t, []scheduler.PlannedBreak{
		{Slot: 4, BreakType: domain.BreakTypeFull},
		{Slot: 12, BreakType: domain.BreakTypeHalf},
		{Slot: 20, BreakType: domain.BreakTypeHalf},
	}, result.AssignmentsByUser[1])
	assert.Equal(t, []scheduler.PlannedBreak{
		{Slot: 5, BreakType: domain.BreakTypeFull},
		{Slot: 13, BreakType: domain.BreakTypeHalf},
		{Slot: 21, BreakType: domain.BreakTypeHalf},
	}, result.AssignmentsByUser[2])

	// 两人的休息没有任何时段重叠
	used := make(map[int]bool)
	for _, breaks := range result.AssignmentsByUser {
		for _, pb := range breaks {
			assert.False(t, used[pb.Slot])
			used[pb.Slot] = true
		}
	}
}

func TestScheduler_Distribute_Deterministic(t *testing.T) {
	engine := testEngine(t)

	shifts := []*domain.Shift{
		{ID: 1, UserID: 3, ShiftCode: "AM"},
		{ID: 2, UserID: 1, ShiftCode: "PM"},
		{ID: 3, UserID: 5, ShiftCode: "BET"},
		{ID: 4, UserID: 2, ShiftCode: "AM"},
		{ID: 5, UserID: 4, ShiftCode: "EV"},
	}

	first := engine.Distribute(shifts)

	// 输入顺序不同也必须得到完全相同的结果
	reversed := make([]*domain.Shift, 0, len(shifts))
	for i := len(shifts) - 1; i >= 0; i-- {
		reversed = append(reversed, shifts[i])
	}
	second := engine.Distribute(reversed)

	assert.Equal(t, first, second)
}

func TestScheduler_Distribute_ResultPassesValidation(t *testing.T) {
	engine := testEngine(t)

	shifts := []*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "AM"},
		{ID: 2, UserID: 2, ShiftCode: "AM"},
		{ID: 3, UserID: 3, ShiftCode: "PM"},
		{ID: 4, UserID: 4, ShiftCode: "BET"},
		{ID: 5, UserID: 5, ShiftCode: "EV"},
		{ID: 6, UserID: 6, ShiftCode: "OFF"},
	}

	result := engine.Distribute(shifts)
	require.True(t, result.Feasible)

	// 自动分配的结果必须能通过逐人校验
	for _, shift := range shifts {
		check := engine.Validate(shift, result.AssignmentsByUser[shift.UserID])
		assert.True(t, check.OK, "助理 %d 的安排未通过校验: %+v", shift.UserID, check.Violations)
	}
}

func TestScheduler_Distribute_SkipsAgentsWithoutWindow(t *testing.T) {
	engine := testEngine(t)

	result := engine.Distribute([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "OFF"},
		{ID: 2, UserID: 2, ShiftCode: "NIGHT"},
	})

	assert.True(t, result.Feasible)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.AssignmentsByUser)
}

func TestScheduler_Distribute_CoverageOverflow(t *testing.T) {
	// 窗口只有一个时段时两人只能挤在一起，超限要如实报告，
	// 但分配结果仍然给出，便于人工调整
	windows := []*domain.ShiftWindow{
		{ID: 1, Code: "TINY", StartTime: "09:00:00", EndTime: "09:15:00"},
	}
	rules := []*domain.BreakRule{
		{ID: 1, BreakType: domain.BreakTypeHalf, MinShiftMinutes: 0, RequiredCount: 1, MinSpacingSlots: 0, ForbiddenEdgeSlots: 0},
	}
	engine := scheduler.New(testGrid(t), windows, rules, &domain.CoverageRule{ID: 1, MaxOnBreak: 1})

	result := engine.Distribute([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "TINY"},
		{ID: 2, UserID: 2, ShiftCode: "TINY"},
	})

	assert.False(t, result.Feasible)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, scheduler.ViolationCoverageExceeded, result.Violations[0].Kind)
	assert.Equal(t, 0, result.Violations[0].Slot)
	assert.Equal(t, []scheduler.PlannedBreak{{Slot: 0, BreakType: domain.BreakTypeHalf}}, result.AssignmentsByUser[1])
	assert.Equal(t, []scheduler.PlannedBreak{{Slot: 0, BreakType: domain.BreakTypeHalf}}, result.AssignmentsByUser[2])
}

func TestScheduler_Distribute_AvoidsOverflowWhenPossible(t *testing.T) {
	// 窗口扩大到两个时段后，同样的输入就能错开
	windows := []*domain.ShiftWindow{
		{ID: 1, Code: "TWO", StartTime: "09:00:00", EndTime: "09:30:00"},
	}
	rules := []*domain.BreakRule{
		{ID: 1, BreakType: domain.BreakTypeHalf, MinShiftMinutes: 0, RequiredCount: 1, MinSpacingSlots: 0, ForbiddenEdgeSlots: 0},
	}
	engine := scheduler.New(testGrid(t), windows, rules, &domain.CoverageRule{ID: 1, MaxOnBreak: 1})

	result := engine.Distribute([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "TWO"},
		{ID: 2, UserID: 2, ShiftCode: "TWO"},
	})

	assert.True(t, result.Feasible)
	assert.Equal(t, []scheduler.PlannedBreak{{Slot: 0, BreakType: domain.BreakTypeHalf}}, result.AssignmentsByUser[1])
	assert.Equal(t, []scheduler.PlannedBreak{{Slot: 1, BreakType: domain.BreakTypeHalf}}, result.AssignmentsByUser[2])
}

func TestScheduler_Distribute_UnplaceableBreak(t *testing.T) {
	// 一个时段放不下两次休息，放不下的那次要报告出来
	windows := []*domain.ShiftWindow{
		{ID: 1, Code: "TINY", StartTime: "09:00:00", EndTime: "09:15:00"},
	}
	rules := []*domain.BreakRule{
		{ID: 1, BreakType: domain.BreakTypeHalf, MinShiftMinutes: 0, RequiredCount: 2, MinSpacingSlots: 0, ForbiddenEdgeSlots: 0},
	}
	engine := scheduler.New(testGrid(t), windows, rules, nil)

	result := engine.Distribute([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "TINY"},
	})

	assert.False(t, result.Feasible)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, scheduler.ViolationUnplaceable, result.Violations[0].Kind)
	assert.Equal(t, int64(1), result.Violations[0].UserID)
	assert.Equal(t, -1, result.Violations[0].Slot)
	assert.Equal(t, []scheduler.PlannedBreak{{Slot: 0, BreakType: domain.BreakTypeHalf}}, result.AssignmentsByUser[1])
}

func TestScheduler_Distribute_EightHourShiftBreakCounts(t *testing.T) {
	engine := testEngine(t)

	result := engine.Distribute([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "AM"},
	})

	require.True(t, result.Feasible)
	breaks := result.AssignmentsByUser[1]
	require.Len(t, breaks, 3)

	counts := make(map[domain.BreakType]int)
	for _, pb := range breaks {
		counts[pb.BreakType]++
	}
	assert.Equal(t, 1, counts[domain.BreakTypeFull])
	assert.Equal(t, 2, counts[domain.BreakTypeHalf])
}

func TestScheduler_Distribute_ShortShiftBreakCounts(t *testing.T) {
	engine := testEngine(t)

	result := engine.Distribute([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "EV"},
	})

	require.True(t, result.Feasible)
	breaks := result.AssignmentsByUser[1]
	require.Len(t, breaks, 1)
	assert.Equal(t, domain.BreakTypeHalf, breaks[0].BreakType)
}
