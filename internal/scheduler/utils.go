package scheduler

import (
	"slices"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func parseClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return 0, err
	}

	return t.Hour()*60 + t.Minute(), nil
}

func windowMinutes(w *domain.ShiftWindow) int {
	start, err := parseClockMinutes(w.StartTime)
	if err != nil {
		return 0
	}
	end, err := parseClockMinutes(w.EndTime)
	if err != nil {
		return 0
	}
	if end <= start {
		return 0
	}

	return end - start
}

// ruleFor 返回某类休息在给定班次时长下适用的规则
// 取 MinShiftMinutes 不超过时长的规则中最大的一条，没有则返回 nil
func ruleFor(rules []*domain.BreakRule, bt domain.BreakType, durationMinutes int) *domain.BreakRule {
	var matched *domain.BreakRule
	for _, rule := range rules {
		if rule.BreakType != bt {
			continue
		}
		if int(rule.MinShiftMinutes) > durationMinutes {
			continue
		}
		if matched == nil || rule.MinShiftMinutes > matched.MinShiftMinutes {
			matched = rule
		}
	}

	return matched
}

// breakTypes 返回规则表中出现过的休息类型，顺序固定以保证结果可复现
func breakTypes(rules []*domain.BreakRule) []domain.BreakType {
	types := make([]domain.BreakType, 0, 2)
	for _, rule := range rules {
		if !slices.Contains(types, rule.BreakType) {
			types = append(types, rule.BreakType)
		}
	}
	slices.Sort(types)

	return types
}
