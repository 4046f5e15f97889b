package utils

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
)

func ValidateShiftWindows(windows []*domain.ShiftWindow) error {
	// 检查每一个窗口的结束时间是不是都大于开始时间
	for _, window := range windows {
		if window.Code == domain.ShiftCodeOff {
			return fmt.Errorf("班次代码 %s 是保留代码，不能用于窗口", domain.ShiftCodeOff)
		}

		startTime, err := time.Parse("15:04:05", window.StartTime)
		if err != nil {
			return fmt.Errorf("班次 %s 的开始时间格式错误", window.Code)
		}
		endTime, err := time.Parse("15:04:05", window.EndTime)
		if err != nil {
			return fmt.Errorf("班次 %s 的结束时间格式错误", window.Code)
		}
		if !endTime.After(startTime) {
			return fmt.Errorf("班次 %s 的结束时间必须大于开始时间", window.Code)
		}
	}

	// 检查班次代码之间是否有重复
	seen := make(map[string]bool)
	for _, window := range windows {
		if seen[window.Code] {
			return fmt.Errorf("班次代码 %s 重复", window.Code)
		}
		seen[window.Code] = true
	}

	return nil
}
