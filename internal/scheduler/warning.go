package scheduler

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

// DetectWarnings 找出休息安排与当前班表不一致的助理并生成警告
// 同一签名（助理、类型、新旧班次代码）的警告只会产生一次，
// 已存在的警告无论是否处理过都不会重复生成，因此重复检测是幂等的，
// 已处理的警告也不会因为再次检测而复活
func (s *Scheduler) DetectWarnings(assignments []*domain.BreakAssignment, shifts []*domain.Shift, existing []*domain.BreakScheduleWarning) []*domain.BreakScheduleWarning {
	shiftCodeByUser := make(map[int64]string, len(shifts))
	for _, shift := range shifts {
		shiftCodeByUser[shift.UserID] = shift.ShiftCode
	}

	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[warningSignature(w.UserID, w.WarningType, w.OldShiftCode, w.NewShiftCode)] = true
	}

	warnings := make([]*domain.BreakScheduleWarning, 0)

	for _, ba := range assignments {
		oldCode := ba.ShiftCode

		var (
			warningType domain.WarningType
			newCode     string
			message     string
		)

		currentCode, onRoster := shiftCodeByUser[ba.UserID]
		switch {
		case !onRoster:
			warningType = domain.WarningTypeShiftCancelled
			newCode = ""
			message = fmt.Sprintf("助理 %d 已不在当天的班表中，原班次 %s 的休息安排需要清理", ba.UserID, oldCode)
		case currentCode != oldCode:
			warningType = domain.WarningTypeShiftChanged
			newCode = currentCode
			message = fmt.Sprintf("助理 %d 的班次已从 %s 变更为 %s，休息安排需要复核", ba.UserID, oldCode, currentCode)
		default:
			// 代码没变但窗口表里已经查不到，同样视为班次取消
			if _, ok := s.resolver.Resolve(currentCode); ok {
				continue
			}
			warningType = domain.WarningTypeShiftCancelled
			newCode = currentCode
			message = fmt.Sprintf("助理 %d 的班次 %s 已没有对应的时间窗口，休息安排需要清理", ba.UserID, oldCode)
		}

		sig := warningSignature(ba.UserID, warningType, oldCode, newCode)
		if seen[sig] {
			continue
		}
		seen[sig] = true

		warnings = append(warnings, &domain.BreakScheduleWarning{
			UserID:       ba.UserID,
			Date:         ba.Date,
			WarningType:  warningType,
			OldShiftCode: oldCode,
			NewShiftCode: newCode,
			Message:      message,
		})
	}

	slices.SortStableFunc(warnings, func(a, b *domain.BreakScheduleWarning) int {
		return cmp.Compare(a.UserID, b.UserID)
	})

	return warnings
}

func warningSignature(userID int64, warningType domain.WarningType, oldCode string, newCode string) string {
	return fmt.Sprintf("%d|%s|%s|%s", userID, warningType, oldCode, newCode)
}
