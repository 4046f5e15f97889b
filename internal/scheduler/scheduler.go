package scheduler

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// Scheduler 负责休息安排的校验、汇总和自动分配
// 内部不做任何 I/O，窗口表和规则表在构建时一次性传入，
// 因此可以在不同日期之间安全地并发使用
type Scheduler struct {
	grid         *IntervalGrid
	resolver     *WindowResolver
	rules        []*domain.BreakRule
	coverageRule *domain.CoverageRule
}

func New(grid *IntervalGrid, windows []*domain.ShiftWindow, rules []*domain.BreakRule, coverageRule *domain.CoverageRule) *Scheduler {
	return &Scheduler{
		grid:         grid,
		resolver:     NewWindowResolver(windows),
		rules:        rules,
		coverageRule: coverageRule,
	}
}

// Distribute 为当天的所有班次自动分配休息时段
// 算法是确定性的贪心：按 userID 升序逐个处理助理，每次休息都放到
// 当前同时休息人数最少的可用时段上，人数相同时取最早的时段。
// 无法满足约束时不会回溯，而是把冲突记录到 Violations 中交给人工处理，
// 相同输入必然产生相同输出，便于复核
func (s *Scheduler) Distribute(shifts []*domain.Shift) *DistributionResult {
	result := &DistributionResult{
		AssignmentsByUser: make(map[int64][]PlannedBreak),
		Violations:        make([]*Violation, 0),
	}

	sorted := slices.Clone(shifts)
	slices.SortFunc(sorted, func(a, b *domain.Shift) int {
		return cmp.Compare(a.UserID, b.UserID)
	})

	staffed := s.staffedBySlot(sorted)
	onBreak := make([]int, s.grid.TotalSlots())

	for _, shift := range sorted {
		w, ok := s.resolver.Resolve(shift.ShiftCode)
		if !ok {
			continue
		}
		first, last, err := s.grid.WindowSlots(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}

		ruleByType := s.applicableRules(windowMinutes(w))
		placed := make([]PlannedBreak, 0)
		required := 0

		for _, bt := range breakTypes(s.rules) {
			rule := ruleByType[bt]
			if rule == nil {
				continue
			}
			required += int(rule.RequiredCount)

			for i := int32(0); i < rule.RequiredCount; i++ {
				slot, found := s.pickSlot(first, last, rule, ruleByType, placed, onBreak)
				if !found {
					result.Violations = append(result.Violations, &Violation{
						UserID:    shift.UserID,
						Slot:      -1,
						BreakType: bt,
						Kind:      ViolationUnplaceable,
						Message:   fmt.Sprintf("助理 %d 的第 %d 次%s没有可用的时段", shift.UserID, i+1, bt),
					})
					continue
				}

				placed = append(placed, PlannedBreak{Slot: slot, BreakType: bt})
				onBreak[slot]++
			}
		}

		if required > 0 {
			slices.SortFunc(placed, func(a, b PlannedBreak) int {
				return cmp.Compare(a.Slot, b.Slot)
			})
			result.AssignmentsByUser[shift.UserID] = placed
		}
	}

	for slot := range onBreak {
		limit := s.maxOnBreakAt(staffed[slot])
		if onBreak[slot] > limit {
			result.Violations = append(result.Violations, &Violation{
				Slot:    slot,
				Kind:    ViolationCoverageExceeded,
				Message: fmt.Sprintf("时段 %s 有 %d 人同时休息，超过上限 %d", s.grid.ClockOf(slot), onBreak[slot], limit),
			})
		}
	}

	result.Feasible = len(result.Violations) == 0

	return result
}

// pickSlot 在 [first, last) 中为一次休息挑选时段
// 候选需要避开班次两端的禁排时段，并和已安排的休息保持足够间隔，
// 在候选中取当前休息人数最少的一个，并列时取最早的
func (s *Scheduler) pickSlot(first int, last int, rule *domain.BreakRule, ruleByType map[domain.BreakType]*domain.BreakRule, placed []PlannedBreak, onBreak []int) (int, bool) {
	edge := int(rule.ForbiddenEdgeSlots)
	bestSlot := -1
	bestCount := 0

	for slot := first + edge; slot < last-edge; slot++ {
		if !compatibleSlot(slot, rule, ruleByType, placed) {
			continue
		}
		if bestSlot == -1 || onBreak[slot] < bestCount {
			bestSlot = slot
			bestCount = onBreak[slot]
		}
	}

	if bestSlot == -1 {
		return 0, false
	}

	return bestSlot, true
}

// compatibleSlot 判断某个时段是否和该助理已安排的休息兼容
func compatibleSlot(slot int, rule *domain.BreakRule, ruleByType map[domain.BreakType]*domain.BreakRule, placed []PlannedBreak) bool {
	for _, p := range placed {
		if p.Slot == slot {
			return false
		}

		spacing := int(rule.MinSpacingSlots)
		if other := ruleByType[p.BreakType]; other != nil {
			spacing = max(spacing, int(other.MinSpacingSlots))
		}
		if abs(slot-p.Slot) < spacing {
			return false
		}
	}

	return true
}

// applicableRules 返回每种休息类型在给定班次时长下适用的规则
func (s *Scheduler) applicableRules(durationMinutes int) map[domain.BreakType]*domain.BreakRule {
	m := make(map[domain.BreakType]*domain.BreakRule)
	for _, bt := range breakTypes(s.rules) {
		if rule := ruleFor(s.rules, bt, durationMinutes); rule != nil {
			m[bt] = rule
		}
	}

	return m
}
