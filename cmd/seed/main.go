package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/config"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/repository"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/seed"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var dateStr string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机助理, 2: 插入默认班次窗口, 3: 插入默认休息规则, 4: 为指定日期插入随机班次, 5: 一键生成演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&dateStr, "date", "", "排班日期 (格式 2006-01-02)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// op 4 和 5 需要日期参数
	var date time.Time
	if op == 4 || op == 5 {
		if dateStr == "" {
			slog.Error("请用 -date 指定排班日期")
			return
		}

		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			slog.Error("日期格式无效", "date", dateStr)
			return
		}
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的助理数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机助理", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入助理", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入助理成功", slog.Int("count", n-cnt))
		}
	case 2:
		seed.SeedShiftWindows(repo)
	case 3:
		seed.SeedBreakRules(repo)
	case 4:
		seed.SeedShifts(repo, date)
	case 5:
		seed.SeedDemoDay(repo, date, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
	default:
		slog.Error("指定的操作非法")
	}
}
