package domain

import "time"

// ShiftWindow 将班次代码（如 "AM"）映射为当天的具体时间窗口
type ShiftWindow struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
