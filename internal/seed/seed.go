package seed

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/repository"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/utils"
)

// DefaultShiftWindows 返回前台常用的三种班次窗口
func DefaultShiftWindows() []*domain.ShiftWindow {
	return []*domain.ShiftWindow{
		{Code: "AM", StartTime: "09:00:00", EndTime: "17:00:00"},
		{Code: "PM", StartTime: "13:00:00", EndTime: "21:00:00"},
		{Code: "BET", StartTime: "11:00:00", EndTime: "19:00:00"},
	}
}

// DefaultBreakRules 返回默认的休息规则
// 7 小时及以上的班次有一次大休和两次小休，4 小时及以上的班次有一次小休
func DefaultBreakRules() []*domain.BreakRule {
	return []*domain.BreakRule{
		{BreakType: domain.BreakTypeFull, MinShiftMinutes: 420, RequiredCount: 1, MinSpacingSlots: 8, ForbiddenEdgeSlots: 4},
		{BreakType: domain.BreakTypeHalf, MinShiftMinutes: 240, RequiredCount: 1, MinSpacingSlots: 8, ForbiddenEdgeSlots: 4},
		{BreakType: domain.BreakTypeHalf, MinShiftMinutes: 420, RequiredCount: 2, MinSpacingSlots: 8, ForbiddenEdgeSlots: 4},
	}
}

func DefaultCoverageRule() *domain.CoverageRule {
	return &domain.CoverageRule{
		MaxOnBreak:        2,
		MaxOnBreakPercent: 0,
	}
}

func SeedShiftWindows(r *repository.Repository) {
	windows := DefaultShiftWindows()
	if err := r.ReplaceShiftWindows(windows); err != nil {
		slog.Error("插入默认班次窗口失败", "error", err)
		return
	}

	slog.Info("插入默认班次窗口成功", "count", len(windows))
}

func SeedBreakRules(r *repository.Repository) {
	cnt := 0
	for _, rule := range DefaultBreakRules() {
		if err := r.CreateBreakRule(rule); err != nil {
			slog.Error("插入默认休息规则失败", "error", err)
			continue
		}
		cnt++
	}

	// 在岗率规则只维护一行，已经存在时保持不动
	if _, err := r.GetCoverageRule(); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := r.CreateCoverageRule(DefaultCoverageRule()); err != nil {
				slog.Error("插入默认在岗率规则失败", "error", err)
			}
		default:
			slog.Error("获取在岗率规则失败", "error", err)
		}
	}

	slog.Info("插入默认休息规则成功", "count", cnt)
}

// SeedShifts 为所有在职助理随机生成某一天的班次
func SeedShifts(r *repository.Repository, date time.Time) {
	windows, err := r.GetAllShiftWindows()
	if err != nil {
		slog.Error("获取班次窗口失败", "error", err)
		return
	}
	if len(windows) == 0 {
		slog.Error("班次窗口为空，请先插入班次窗口")
		return
	}

	users, err := r.GetAllUsers()
	if err != nil {
		slog.Error("获取助理列表失败", "error", err)
		return
	}

	cnt := 0
	for _, user := range users {
		if !user.IsActive {
			continue
		}

		shift := &domain.Shift{
			UserID:    user.ID,
			Date:      date,
			ShiftCode: utils.GenerateRandomShiftCode(windows),
		}

		if err := r.CreateShift(shift); err != nil {
			slog.Error("插入班次失败", "error", err, "user_id", user.ID)
			continue
		}
		cnt++
	}

	slog.Info("插入班次成功", "count", cnt)
}

// SeedDemoDay 一次性生成演示数据：默认窗口、默认规则、随机助理和当天的随机班次
func SeedDemoDay(r *repository.Repository, date time.Time, assistantCount int, password string, emailDomainName string) {
	SeedShiftWindows(r)
	SeedBreakRules(r)

	cnt := 0
	for i := 0; i < assistantCount; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomainName)
		if err != nil {
			slog.Error("生成随机助理失败", "error", err)
			continue
		}

		if err := r.CreateUser(user); err != nil {
			slog.Error("插入助理失败", "error", err)
			continue
		}
		cnt++
	}
	slog.Info("插入随机助理成功", "count", cnt)

	SeedShifts(r, date)
}
