package scheduler

import "github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"

// PlannedBreak 表示一次休息安排：在哪个时段休哪种休息
type PlannedBreak struct {
	Slot      int              `json:"slot"`
	BreakType domain.BreakType `json:"breakType"`
}

type ViolationKind string

const (
	ViolationOutOfWindow      ViolationKind = "超出班次范围"
	ViolationForbiddenEdge    ViolationKind = "处于边缘禁排时段"
	ViolationTooClose         ViolationKind = "休息间隔过近"
	ViolationCountMismatch    ViolationKind = "休息次数不符"
	ViolationDuplicateSlot    ViolationKind = "时段重复"
	ViolationCoverageExceeded ViolationKind = "同时休息人数超限"
	ViolationUnplaceable      ViolationKind = "无法安排休息"
)

// Violation 描述一条违反约束的记录
// Slot 为 -1 表示该违规和具体时段无关（例如休息次数不符）
type Violation struct {
	UserID    int64            `json:"userID"`
	Slot      int              `json:"slot"`
	BreakType domain.BreakType `json:"breakType"`
	Kind      ViolationKind    `json:"kind"`
	Message   string           `json:"message"`
}

type ValidationResult struct {
	OK         bool         `json:"ok"`
	Violations []*Violation `json:"violations"`
}

// SlotCoverage 汇总单个时段的在岗人数和休息人数
type SlotCoverage struct {
	Slot      int    `json:"slot"`
	Clock     string `json:"clock"`
	Staffed   int    `json:"staffed"`
	OnBreak   int    `json:"onBreak"`
	Available int    `json:"available"`
}

type CoverageSnapshot []SlotCoverage

// DistributionResult 是自动分配的结果
// Violations 非空时 Feasible 为 false，但 AssignmentsByUser 仍然会给出
// 最接近可行的安排，便于人工调整
type DistributionResult struct {
	AssignmentsByUser map[int64][]PlannedBreak `json:"assignmentsByUser"`
	Violations        []*Violation             `json:"violations"`
	Feasible          bool                     `json:"feasible"`
}
