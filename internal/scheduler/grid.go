package scheduler

import (
	"fmt"
)

// IntervalGrid 将营业日按固定长度切分成连续的时段
// 所有的休息安排都以时段下标表示，避免在各处重复做时间运算
type IntervalGrid struct {
	dayStart    int // 距离 00:00 的分钟数
	dayEnd      int
	slotMinutes int
}

func NewIntervalGrid(startHour int, endHour int, slotMinutes int) (*IntervalGrid, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("营业时间 %d:00-%d:00 不合法", startHour, endHour)
	}
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("时段长度 %d 分钟不合法", slotMinutes)
	}
	if (endHour-startHour)*60%slotMinutes != 0 {
		return nil, fmt.Errorf("时段长度 %d 分钟无法整除营业时间", slotMinutes)
	}

	return &IntervalGrid{
		dayStart:    startHour * 60,
		dayEnd:      endHour * 60,
		slotMinutes: slotMinutes,
	}, nil
}

func (g *IntervalGrid) TotalSlots() int {
	return (g.dayEnd - g.dayStart) / g.slotMinutes
}

// SlotOf 返回某个时刻所在的时段下标，时刻需形如 "15:04:05"
func (g *IntervalGrid) SlotOf(clock string) (int, error) {
	minutes, err := parseClockMinutes(clock)
	if err != nil {
		return 0, err
	}
	if minutes < g.dayStart || minutes >= g.dayEnd {
		return 0, fmt.Errorf("时刻 %s 不在营业时间内", clock)
	}

	return (minutes - g.dayStart) / g.slotMinutes, nil
}

// ClockOf 返回某个时段的开始时刻
func (g *IntervalGrid) ClockOf(slot int) string {
	minutes := g.dayStart + slot*g.slotMinutes
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// WindowSlots 返回某个时间窗口覆盖的时段区间 [first, last)
// 没有对齐到时段边界时，开始时刻向后取整，结束时刻向前取整，
// 超出营业时间的部分会被截断
func (g *IntervalGrid) WindowSlots(startClock string, endClock string) (int, int, error) {
	start, err := parseClockMinutes(startClock)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClockMinutes(endClock)
	if err != nil {
		return 0, 0, err
	}

	start = max(start, g.dayStart)
	end = min(end, g.dayEnd)
	if end <= start {
		return 0, 0, nil
	}

	first := (start - g.dayStart + g.slotMinutes - 1) / g.slotMinutes
	last := (end - g.dayStart) / g.slotMinutes

	if last <= first {
		return first, first, nil
	}

	return first, last, nil
}
