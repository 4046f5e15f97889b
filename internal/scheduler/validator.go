package scheduler

import (
	"fmt"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// Validate 检查一个助理在给定班次下的休息安排是否满足所有约束
// 一次调用会收集全部违规，不在第一条就停下，
// 但每次休息只报告它最先违反的那条检查，避免同一问题重复出现
func (s *Scheduler) Validate(shift *domain.Shift, proposed []PlannedBreak) *ValidationResult {
	result := &ValidationResult{
		Violations: make([]*Violation, 0),
	}

	// 班次没有对应窗口时视为零长度，所有休息都会落在范围之外
	first, last, duration := 0, 0, 0
	if w, ok := s.resolver.Resolve(shift.ShiftCode); ok {
		if f, l, err := s.grid.WindowSlots(w.StartTime, w.EndTime); err == nil {
			first, last = f, l
			duration = windowMinutes(w)
		}
	}

	ruleByType := s.applicableRules(duration)

	for i, pb := range proposed {
		rule := ruleByType[pb.BreakType]

		if pb.Slot < first || pb.Slot >= last {
			result.Violations = append(result.Violations, &Violation{
				UserID:    shift.UserID,
				Slot:      pb.Slot,
				BreakType: pb.BreakType,
				Kind:      ViolationOutOfWindow,
				Message:   fmt.Sprintf("时段 %d 不在班次 %s 的范围内", pb.Slot, shift.ShiftCode),
			})
			continue
		}

		edge := 0
		if rule != nil {
			edge = int(rule.ForbiddenEdgeSlots)
		}
		if pb.Slot < first+edge || pb.Slot >= last-edge {
			result.Violations = append(result.Violations, &Violation{
				UserID:    shift.UserID,
				Slot:      pb.Slot,
				BreakType: pb.BreakType,
				Kind:      ViolationForbiddenEdge,
				Message:   fmt.Sprintf("时段 %d 处于班次开始或结束前 %d 个时段内，不能安排%s", pb.Slot, edge, pb.BreakType),
			})
			continue
		}

		tooClose := false
		for j, other := range proposed {
			if j == i {
				continue
			}

			spacing := 0
			if rule != nil {
				spacing = int(rule.MinSpacingSlots)
			}
			if otherRule := ruleByType[other.BreakType]; otherRule != nil {
				spacing = max(spacing, int(otherRule.MinSpacingSlots))
			}
			if abs(pb.Slot-other.Slot) < spacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			result.Violations = append(result.Violations, &Violation{
				UserID:    shift.UserID,
				Slot:      pb.Slot,
				BreakType: pb.BreakType,
				Kind:      ViolationTooClose,
				Message:   fmt.Sprintf("时段 %d 与其他休息的间隔过近", pb.Slot),
			})
			continue
		}

		duplicate := false
		for j := 0; j < i; j++ {
			if proposed[j].Slot == pb.Slot {
				duplicate = true
				break
			}
		}
		if duplicate {
			result.Violations = append(result.Violations, &Violation{
				UserID:    shift.UserID,
				Slot:      pb.Slot,
				BreakType: pb.BreakType,
				Kind:      ViolationDuplicateSlot,
				Message:   fmt.Sprintf("时段 %d 被重复安排", pb.Slot),
			})
		}
	}

	counts := make(map[domain.BreakType]int)
	for _, pb := range proposed {
		counts[pb.BreakType]++
	}

	checked := make(map[domain.BreakType]bool)
	for _, bt := range breakTypes(s.rules) {
		required := 0
		if rule := ruleByType[bt]; rule != nil {
			required = int(rule.RequiredCount)
		}
		if counts[bt] != required {
			result.Violations = append(result.Violations, &Violation{
				UserID:    shift.UserID,
				Slot:      -1,
				BreakType: bt,
				Kind:      ViolationCountMismatch,
				Message:   fmt.Sprintf("该班次需要 %d 次%s，实际安排了 %d 次", required, bt, counts[bt]),
			})
		}
		checked[bt] = true
	}

	// 规则表之外的休息类型一律视为次数不符
	for _, pb := range proposed {
		if checked[pb.BreakType] {
			continue
		}
		checked[pb.BreakType] = true

		result.Violations = append(result.Violations, &Violation{
			UserID:    shift.UserID,
			Slot:      -1,
			BreakType: pb.BreakType,
			Kind:      ViolationCountMismatch,
			Message:   fmt.Sprintf("该班次需要 0 次%s，实际安排了 %d 次", pb.BreakType, counts[pb.BreakType]),
		})
	}

	result.OK = len(result.Violations) == 0

	return result
}
