package domain

import "time"

// ShiftCodeOff 表示当天没有班次，不对应任何时间窗口
const ShiftCodeOff = "OFF"

type Shift struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Date      time.Time `json:"date"`
	ShiftCode string    `json:"shiftCode"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
