package scheduler

import (
	"math"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// Summarize 汇总当天每个时段的在岗人数和休息人数
// 只做聚合不做校验，快照里只保留至少有一人在岗或在休息的时段，
// 已经脱离班表的休息安排也会被计入，方便前端展示异常
func (s *Scheduler) Summarize(shifts []*domain.Shift, assignments []*domain.BreakAssignment) CoverageSnapshot {
	staffed := s.staffedBySlot(shifts)
	onBreak := make([]int, s.grid.TotalSlots())

	for _, ba := range assignments {
		slot := int(ba.Slot)
		if slot < 0 || slot >= len(onBreak) {
			continue
		}
		onBreak[slot]++
	}

	snapshot := make(CoverageSnapshot, 0, len(staffed))
	for slot := range staffed {
		if staffed[slot] == 0 && onBreak[slot] == 0 {
			continue
		}

		snapshot = append(snapshot, SlotCoverage{
			Slot:      slot,
			Clock:     s.grid.ClockOf(slot),
			Staffed:   staffed[slot],
			OnBreak:   onBreak[slot],
			Available: staffed[slot] - onBreak[slot],
		})
	}

	return snapshot
}

// staffedBySlot 统计每个时段的在岗人数，没有对应窗口的班次不参与统计
func (s *Scheduler) staffedBySlot(shifts []*domain.Shift) []int {
	staffed := make([]int, s.grid.TotalSlots())

	for _, shift := range shifts {
		w, ok := s.resolver.Resolve(shift.ShiftCode)
		if !ok {
			continue
		}
		first, last, err := s.grid.WindowSlots(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		for slot := first; slot < last; slot++ {
			staffed[slot]++
		}
	}

	return staffed
}

// maxOnBreakAt 返回某个时段允许同时休息的人数上限
// 绝对上限优先于百分比上限，两者都没配置时不限制
func (s *Scheduler) maxOnBreakAt(staffed int) int {
	if s.coverageRule == nil {
		return math.MaxInt
	}
	if s.coverageRule.MaxOnBreak > 0 {
		return int(s.coverageRule.MaxOnBreak)
	}
	if s.coverageRule.MaxOnBreakPercent > 0 {
		return staffed * int(s.coverageRule.MaxOnBreakPercent) / 100
	}

	return math.MaxInt
}
