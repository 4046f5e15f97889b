package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func TestScheduler_Summarize(t *testing.T) {
	engine := testEngine(t)

	shifts := []*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "AM"},
		{ID: 2, UserID: 2, ShiftCode: "PM"},
	}
	assignments := []*domain.BreakAssignment{
		{ID: 1, UserID: 1, Date: testDate(), ShiftCode: "AM", Slot: 4, BreakType: domain.BreakTypeFull},
		{ID: 2, UserID: 2, Date: testDate(), ShiftCode: "PM", Slot: 40, BreakType: domain.BreakTypeHalf},
	}

	snapshot := engine.Summarize(shifts, assignments)

	// 早班加晚班正好铺满整个营业日的 48 个时段
	require.Len(t, snapshot, 48)

	bySlot := make(map[int]int)
	for i, sc := range snapshot {
		bySlot[sc.Slot] = i
		assert.Equal(t, sc.Staffed-sc.OnBreak, sc.Available)
	}

	opening := snapshot[bySlot[0]]
	assert.Equal(t, "09:00:00", opening.Clock)
	assert.Equal(t, 1, opening.Staffed)
	assert.Equal(t, 0, opening.OnBreak)

	overlap := snapshot[bySlot[16]]
	assert.Equal(t, "13:00:00", overlap.Clock)
	assert.Equal(t, 2, overlap.Staffed)

	morningBreak := snapshot[bySlot[4]]
	assert.Equal(t, 1, morningBreak.Staffed)
	assert.Equal(t, 1, morningBreak.OnBreak)
	assert.Equal(t, 0, morningBreak.Available)

	eveningBreak := snapshot[bySlot[40]]
	assert.Equal(t, 1, eveningBreak.Staffed)
	assert.Equal(t, 1, eveningBreak.OnBreak)
	assert.Equal(t, 0, eveningBreak.Available)
}

func TestScheduler_Summarize_SlotsAscending(t *testing.T) {
	engine := testEngine(t)

	snapshot := engine.Summarize([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "EV"},
		{ID: 2, UserID: 2, ShiftCode: "AM"},
	}, nil)

	for i := 1; i < len(snapshot); i++ {
		assert.Less(t, snapshot[i-1].Slot, snapshot[i].Slot)
	}
}

func TestScheduler_Summarize_OrphanedAssignment(t *testing.T) {
	engine := testEngine(t)

	// 班表已清空但休息安排还在，时段仍要出现在快照里
	snapshot := engine.Summarize(nil, []*domain.BreakAssignment{
		{ID: 1, UserID: 1, Date: testDate(), ShiftCode: "AM", Slot: 5, BreakType: domain.BreakTypeFull},
	})

	require.Len(t, snapshot, 1)
	assert.Equal(t, 5, snapshot[0].Slot)
	assert.Equal(t, 0, snapshot[0].Staffed)
	assert.Equal(t, 1, snapshot[0].OnBreak)
	assert.Equal(t, -1, snapshot[0].Available)
}

func TestScheduler_Summarize_IgnoresSlotsOutOfRange(t *testing.T) {
	engine := testEngine(t)

	snapshot := engine.Summarize(nil, []*domain.BreakAssignment{
		{ID: 1, UserID: 1, Date: testDate(), ShiftCode: "AM", Slot: -3, BreakType: domain.BreakTypeFull},
		{ID: 2, UserID: 1, Date: testDate(), ShiftCode: "AM", Slot: 99, BreakType: domain.BreakTypeHalf},
	})

	assert.Empty(t, snapshot)
}

func TestScheduler_Summarize_Empty(t *testing.T) {
	engine := testEngine(t)

	assert.Empty(t, engine.Summarize(nil, nil))
}

func TestScheduler_Summarize_OffShiftNotStaffed(t *testing.T) {
	engine := testEngine(t)

	snapshot := engine.Summarize([]*domain.Shift{
		{ID: 1, UserID: 1, ShiftCode: "OFF"},
		{ID: 2, UserID: 2, ShiftCode: "NIGHT"},
	}, nil)

	assert.Empty(t, snapshot)
}
