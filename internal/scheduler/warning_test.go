package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func TestScheduler_DetectWarnings_ShiftChanged(t *testing.T) {
	engine := testEngine(t)

	// 三条休息安排都来自同一个变更，只应产生一条警告
	assignments := []*domain.BreakAssignment{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
		{ID: 2, UserID: 42, Date: testDate(), ShiftCode: "AM", Slot: 12, BreakType: domain.BreakTypeHalf},
		{ID: 3, UserID: 42, Date: testDate(), ShiftCode: "AM", Slot: 20, BreakType: domain.BreakTypeHalf},
	}
	shifts := []*domain.Shift{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "PM"},
	}

	warnings := engine.DetectWarnings(assignments, shifts, nil)

	require.Len(t, warnings, 1)
	assert.Equal(t, int64(42), warnings[0].UserID)
	assert.Equal(t, domain.WarningTypeShiftChanged, warnings[0].WarningType)
	assert.Equal(t, "AM", warnings[0].OldShiftCode)
	assert.Equal(t, "PM", warnings[0].NewShiftCode)
	assert.Equal(t, testDate(), warnings[0].Date)
}

func TestScheduler_DetectWarnings_Idempotent(t *testing.T) {
	engine := testEngine(t)

	assignments := []*domain.BreakAssignment{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
	}
	shifts := []*domain.Shift{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "PM"},
	}

	first := engine.DetectWarnings(assignments, shifts, nil)
	require.Len(t, first, 1)

	// 再次检测时已有同签名的警告，不应重复产生
	second := engine.DetectWarnings(assignments, shifts, first)
	assert.Empty(t, second)
}

func TestScheduler_DetectWarnings_ResolvedStaysResolved(t *testing.T) {
	engine := testEngine(t)

	assignments := []*domain.BreakAssignment{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
	}
	shifts := []*domain.Shift{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "PM"},
	}
	existing := []*domain.BreakScheduleWarning{
		{
			ID:           1,
			UserID:       42,
			Date:         testDate(),
			WarningType:  domain.WarningTypeShiftChanged,
			OldShiftCode: "AM",
			NewShiftCode: "PM",
			Resolved:     true,
		},
	}

	// 已处理的警告不会因为再次检测而复活
	assert.Empty(t, engine.DetectWarnings(assignments, shifts, existing))
}

func TestScheduler_DetectWarnings_NewChangeAfterResolve(t *testing.T) {
	engine := testEngine(t)

	assignments := []*domain.BreakAssignment{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
	}
	existing := []*domain.BreakScheduleWarning{
		{
			ID:           1,
			UserID:       42,
			Date:         testDate(),
			WarningType:  domain.WarningTypeShiftChanged,
			OldShiftCode: "AM",
			NewShiftCode: "PM",
			Resolved:     true,
		},
	}

	// 班次又变成了别的，签名不同，要产生新的警告
	warnings := engine.DetectWarnings(assignments, []*domain.Shift{
		{ID: 1, UserID: 42, Date: testDate(), ShiftCode: "BET"},
	}, existing)

	require.Len(t, warnings, 1)
	assert.Equal(t, "BET", warnings[0].NewShiftCode)
}

func TestScheduler_DetectWarnings_RemovedFromRoster(t *testing.T) {
	engine := testEngine(t)

	warnings := engine.DetectWarnings([]*domain.BreakAssignment{
		{ID: 1, UserID: 7, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
	}, nil, nil)

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningTypeShiftCancelled, warnings[0].WarningType)
	assert.Equal(t, "AM", warnings[0].OldShiftCode)
	assert.Empty(t, warnings[0].NewShiftCode)
}

func TestScheduler_DetectWarnings_WindowRemoved(t *testing.T) {
	engine := testEngine(t)

	// 班次代码没变，但窗口表里已经查不到这个代码
	warnings := engine.DetectWarnings([]*domain.BreakAssignment{
		{ID: 1, UserID: 9, Date: testDate(), ShiftCode: "NIGHT", Slot: 4, BreakType: domain.BreakTypeFull},
	}, []*domain.Shift{
		{ID: 1, UserID: 9, Date: testDate(), ShiftCode: "NIGHT"},
	}, nil)

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarningTypeShiftCancelled, warnings[0].WarningType)
	assert.Equal(t, "NIGHT", warnings[0].OldShiftCode)
	assert.Equal(t, "NIGHT", warnings[0].NewShiftCode)
}

func TestScheduler_DetectWarnings_NoDrift(t *testing.T) {
	engine := testEngine(t)

	warnings := engine.DetectWarnings([]*domain.BreakAssignment{
		{ID: 1, UserID: 1, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
	}, []*domain.Shift{
		{ID: 1, UserID: 1, Date: testDate(), ShiftCode: "AM"},
	}, nil)

	assert.Empty(t, warnings)
}

func TestScheduler_DetectWarnings_SortedByUser(t *testing.T) {
	engine := testEngine(t)

	warnings := engine.DetectWarnings([]*domain.BreakAssignment{
		{ID: 1, UserID: 20, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
		{ID: 2, UserID: 10, Date: testDate(), ShiftCode: "PM", Slot: 20, BreakType: domain.BreakTypeFull},
	}, nil, nil)

	require.Len(t, warnings, 2)
	assert.Equal(t, int64(10), warnings[0].UserID)
	assert.Equal(t, int64(20), warnings[1].UserID)
}
