package domain

import "time"

type WarningType string

const (
	WarningTypeShiftChanged   WarningType = "班次变更"
	WarningTypeShiftCancelled WarningType = "班次取消"
)

// BreakScheduleWarning 表示已有的休息安排和当前班次不再一致，需要人工复核
// 警告只能被显式处理，同一个 (userID, date, warningType, oldShiftCode, newShiftCode)
// 签名的警告处理后不会再次产生
type BreakScheduleWarning struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"userID"`
	Date         time.Time   `json:"date"`
	WarningType  WarningType `json:"warningType"`
	OldShiftCode string      `json:"oldShiftCode"`
	NewShiftCode string      `json:"newShiftCode"`
	Message      string      `json:"message"`
	Resolved     bool        `json:"resolved"`
	CreatedAt    time.Time   `json:"createdAt"`
	Version      int32       `json:"-"`
}
