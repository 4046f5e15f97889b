package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/scheduler"
)

func TestScheduler_Validate(t *testing.T) {
	engine := testEngine(t)

	tests := map[string]struct {
		shift     *domain.Shift
		proposed  []scheduler.PlannedBreak
		wantOK    bool
		wantKinds []scheduler.ViolationKind
	}{
		"八小时班次的完整安排": {
			shift: &domain.Shift{UserID: 1, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 4, BreakType: domain.BreakTypeFull},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
				{Slot: 20, BreakType: domain.BreakTypeHalf},
			},
			wantOK: true,
		},
		"四小时班次只需一次小休": {
			shift: &domain.Shift{UserID: 2, ShiftCode: "EV"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 38, BreakType: domain.BreakTypeHalf},
			},
			wantOK: true,
		},
		"休息日不需要任何安排": {
			shift:    &domain.Shift{UserID: 3, ShiftCode: "OFF"},
			proposed: nil,
			wantOK:   true,
		},
		"休息日不允许有安排": {
			shift: &domain.Shift{UserID: 3, ShiftCode: "OFF"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 10, BreakType: domain.BreakTypeFull},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationOutOfWindow,
				scheduler.ViolationCountMismatch,
			},
		},
		"空安排缺少所有必需的休息": {
			shift:    &domain.Shift{UserID: 4, ShiftCode: "AM"},
			proposed: nil,
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationCountMismatch,
				scheduler.ViolationCountMismatch,
			},
		},
		"时段超出班次范围": {
			shift: &domain.Shift{UserID: 5, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 40, BreakType: domain.BreakTypeFull},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
				{Slot: 20, BreakType: domain.BreakTypeHalf},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationOutOfWindow,
			},
		},
		"时段落在边缘禁排区": {
			shift: &domain.Shift{UserID: 6, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 2, BreakType: domain.BreakTypeFull},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
				{Slot: 20, BreakType: domain.BreakTypeHalf},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationForbiddenEdge,
			},
		},
		"休息之间间隔过近": {
			shift: &domain.Shift{UserID: 7, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 10, BreakType: domain.BreakTypeFull},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
				{Slot: 20, BreakType: domain.BreakTypeHalf},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationTooClose,
				scheduler.ViolationTooClose,
			},
		},
		"小休次数不足": {
			shift: &domain.Shift{UserID: 8, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 4, BreakType: domain.BreakTypeFull},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationCountMismatch,
			},
		},
		"大休多排且小休缺失": {
			shift: &domain.Shift{UserID: 9, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 4, BreakType: domain.BreakTypeFull},
				{Slot: 13, BreakType: domain.BreakTypeFull},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationCountMismatch,
				scheduler.ViolationCountMismatch,
			},
		},
		"规则表之外的休息类型": {
			shift: &domain.Shift{UserID: 10, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 4, BreakType: domain.BreakTypeFull},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
				{Slot: 20, BreakType: domain.BreakTypeHalf},
				{Slot: 28, BreakType: domain.BreakType("夜休")},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationCountMismatch,
			},
		},
		"每次休息只报告最先违反的检查": {
			shift: &domain.Shift{UserID: 11, ShiftCode: "AM"},
			proposed: []scheduler.PlannedBreak{
				{Slot: 40, BreakType: domain.BreakTypeFull},
				{Slot: 40, BreakType: domain.BreakTypeHalf},
				{Slot: 12, BreakType: domain.BreakTypeHalf},
			},
			wantKinds: []scheduler.ViolationKind{
				scheduler.ViolationOutOfWindow,
				scheduler.ViolationOutOfWindow,
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := engine.Validate(tc.shift, tc.proposed)

			assert.Equal(t, tc.wantOK, result.OK)
			require.Len(t, result.Violations, len(tc.wantKinds))
			for i, v := range result.Violations {
				assert.Equal(t, tc.wantKinds[i], v.Kind)
				assert.Equal(t, tc.shift.UserID, v.UserID)
			}
		})
	}
}

func TestScheduler_Validate_DuplicateSlots(t *testing.T) {
	// 间隔要求为零时，重复时段才会以时段重复的形式报告出来
	rules := []*domain.BreakRule{
		{ID: 1, BreakType: domain.BreakTypeHalf, MinShiftMinutes: 0, RequiredCount: 2, MinSpacingSlots: 0, ForbiddenEdgeSlots: 0},
	}
	engine := scheduler.New(testGrid(t), testWindows(), rules, nil)

	result := engine.Validate(&domain.Shift{UserID: 1, ShiftCode: "AM"}, []scheduler.PlannedBreak{
		{Slot: 5, BreakType: domain.BreakTypeHalf},
		{Slot: 5, BreakType: domain.BreakTypeHalf},
	})

	assert.False(t, result.OK)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, scheduler.ViolationDuplicateSlot, result.Violations[0].Kind)
	assert.Equal(t, 5, result.Violations[0].Slot)
}

func TestScheduler_Validate_CountViolationHasNoSlot(t *testing.T) {
	engine := testEngine(t)

	result := engine.Validate(&domain.Shift{UserID: 1, ShiftCode: "AM"}, nil)

	require.NotEmpty(t, result.Violations)
	for _, v := range result.Violations {
		assert.Equal(t, scheduler.ViolationCountMismatch, v.Kind)
		assert.Equal(t, -1, v.Slot)
	}
}
