package domain

import "time"

type BreakType string

const (
	BreakTypeFull BreakType = "大休"
	BreakTypeHalf BreakType = "小休"
)

// BreakRule 规定某类休息在不同班次时长下的要求
// 对同一种休息类型，取 MinShiftMinutes 不超过班次时长的规则中最大的一条，
// 没有匹配的规则时表示该类型无需休息
type BreakRule struct {
	ID                 int64     `json:"id"`
	BreakType          BreakType `json:"breakType"`
	MinShiftMinutes    int32     `json:"minShiftMinutes"`
	RequiredCount      int32     `json:"requiredCount"`
	MinSpacingSlots    int32     `json:"minSpacingSlots"`
	ForbiddenEdgeSlots int32     `json:"forbiddenEdgeSlots"`
	CreatedAt          time.Time `json:"createdAt"`
	Version            int32     `json:"-"`
}
