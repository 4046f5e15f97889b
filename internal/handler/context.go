package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	UserInfoCtx     ContextKey = "userInfo"
	ScheduleDateCtx ContextKey = "scheduleDate"
	ShiftCtx        ContextKey = "shift"
	BreakRuleCtx    ContextKey = "breakRule"
	BreakWarningCtx ContextKey = "breakWarning"
)
