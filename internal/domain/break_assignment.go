package domain

import "time"

// BreakAssignment 表示某个助理在某天的某个时段休息
// 同一个助理同一天的休息安排总是整组替换，不做部分修改
type BreakAssignment struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Date      time.Time `json:"date"`
	ShiftCode string    `json:"shiftCode"` // 分配休息时助理的班次代码
	Slot      int32     `json:"slot"`
	BreakType BreakType `json:"breakType"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
