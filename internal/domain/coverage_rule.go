package domain

import "time"

// CoverageRule 限制每个时段允许同时休息的人数
// MaxOnBreak 大于 0 时按绝对人数限制，否则 MaxOnBreakPercent 大于 0 时
// 按该时段在岗人数的百分比限制，两者都为 0 时不限制
type CoverageRule struct {
	ID                int64     `json:"id"`
	MaxOnBreak        int32     `json:"maxOnBreak"`
	MaxOnBreakPercent int32     `json:"maxOnBreakPercent"`
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}
