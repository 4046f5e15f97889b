package scheduler_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/scheduler"
)

func TestNewIntervalGrid(t *testing.T) {
	tests := map[string]struct {
		startHour   int
		endHour     int
		slotMinutes int
		wantErr     bool
		wantSlots   int
	}{
		"标准营业时间": {
			startHour:   9,
			endHour:     21,
			slotMinutes: 15,
			wantSlots:   48,
		},
		"全天按半小时切分": {
			startHour:   0,
			endHour:     24,
			slotMinutes: 30,
			wantSlots:   48,
		},
		"按小时切分": {
			startHour:   9,
			endHour:     21,
			slotMinutes: 60,
			wantSlots:   12,
		},
		"开始不早于结束": {
			startHour:   21,
			endHour:     9,
			slotMinutes: 15,
			wantErr:     true,
		},
		"开始时间为负": {
			startHour:   -1,
			endHour:     21,
			slotMinutes: 15,
			wantErr:     true,
		},
		"结束时间超过一天": {
			startHour:   9,
			endHour:     25,
			slotMinutes: 15,
			wantErr:     true,
		},
		"时段长度为零": {
			startHour:   9,
			endHour:     21,
			slotMinutes: 0,
			wantErr:     true,
		},
		"时段长度无法整除": {
			startHour:   9,
			endHour:     21,
			slotMinutes: 25,
			wantErr:     true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			grid, err := scheduler.NewIntervalGrid(tc.startHour, tc.endHour, tc.slotMinutes)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantSlots, grid.TotalSlots())
		})
	}
}

func TestIntervalGrid_SlotOf(t *testing.T) {
	grid := testGrid(t)

	tests := map[string]struct {
		clock    string
		wantSlot int
		wantErr  bool
	}{
		"营业开始时刻": {clock: "09:00:00", wantSlot: 0},
		"第二个时段":  {clock: "09:15:00", wantSlot: 1},
		"时段内的时刻": {clock: "09:14:59", wantSlot: 0},
		"正午":     {clock: "12:00:00", wantSlot: 12},
		"最后一个时段": {clock: "20:45:00", wantSlot: 47},
		"营业结束时刻": {clock: "21:00:00", wantErr: true},
		"营业开始之前": {clock: "08:59:00", wantErr: true},
		"格式错误":   {clock: "9:00", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			slot, err := grid.SlotOf(tc.clock)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantSlot, slot)
		})
	}
}

func TestIntervalGrid_ClockOf(t *testing.T) {
	grid := testGrid(t)

	assert.Equal(t, "09:00:00", grid.ClockOf(0))
	assert.Equal(t, "13:00:00", grid.ClockOf(16))
	assert.Equal(t, "20:45:00", grid.ClockOf(47))
}

func TestIntervalGrid_RoundTrip(t *testing.T) {
	grid := testGrid(t)

	// 对齐到时段边界的时刻在两个方向的换算中都不会失真
	for slot := 0; slot < grid.TotalSlots(); slot++ {
		t.Run(fmt.Sprintf("时段%d", slot), func(t *testing.T) {
			clock := grid.ClockOf(slot)
			got, err := grid.SlotOf(clock)
			require.NoError(t, err)
			assert.Equal(t, slot, got)
			assert.Equal(t, clock, grid.ClockOf(got))
		})
	}
}

func TestIntervalGrid_WindowSlots(t *testing.T) {
	grid := testGrid(t)

	tests := map[string]struct {
		start     string
		end       string
		wantFirst int
		wantLast  int
		wantErr   bool
	}{
		"早班窗口": {
			start:     "09:00:00",
			end:       "17:00:00",
			wantFirst: 0,
			wantLast:  32,
		},
		"晚班窗口": {
			start:     "13:00:00",
			end:       "21:00:00",
			wantFirst: 16,
			wantLast:  48,
		},
		"未对齐时向内取整": {
			start:     "09:05:00",
			end:       "17:10:00",
			wantFirst: 1,
			wantLast:  32,
		},
		"超出营业时间的部分被截断": {
			start:     "07:00:00",
			end:       "23:00:00",
			wantFirst: 0,
			wantLast:  48,
		},
		"结束早于开始时窗口为空": {
			start:     "17:00:00",
			end:       "09:00:00",
			wantFirst: 0,
			wantLast:  0,
		},
		"不足一个时段时窗口为空": {
			start:     "09:05:00",
			end:       "09:10:00",
			wantFirst: 1,
			wantLast:  1,
		},
		"开始时刻格式错误": {
			start:   "morning",
			end:     "17:00:00",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			first, last, err := grid.WindowSlots(tc.start, tc.end)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantFirst, first)
			assert.Equal(t, tc.wantLast, last)
		})
	}
}
