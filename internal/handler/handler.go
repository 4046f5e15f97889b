package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/config"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/repository"
	"github.com/sysu-ecnc-dev/break-scheduler/backend/internal/scheduler"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	grid        *scheduler.IntervalGrid
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, grid *scheduler.IntervalGrid, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		grid:        grid,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 所有助理应该都有权限获取其他人的个人信息
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/password", h.UpdateUserPassword)
			})
		})

		// 排班配置
		r.Route("/shift-windows", func(r chi.Router) {
			r.Get("/", h.GetAllShiftWindows)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Put("/", h.ReplaceShiftWindows)
		})

		r.Route("/break-rules", func(r chi.Router) {
			r.Get("/", h.GetAllBreakRules)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Post("/", h.CreateBreakRule)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.breakRule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/", h.UpdateBreakRule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Delete("/", h.DeleteBreakRule)
			})
		})

		r.Route("/coverage-rule", func(r chi.Router) {
			r.Get("/", h.GetCoverageRule)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Patch("/", h.UpdateCoverageRule)
		})

		// 某一天的休息排班
		r.Route("/break-schedule/{date}", func(r chi.Router) {
			r.Use(h.scheduleDate)
			r.Get("/", h.GetBreakSchedule)

			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).Post("/preview", h.PreviewDistribution)
			r.With(h.RequiredRole([]domain.Role{domain.RoleBlackCore})).With(h.myInfo).Post("/distribute", h.ApplyDistribution)

			r.Route("/shifts", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleBlackCore}))
				r.Post("/", h.CreateShift)
				r.Route("/{userID}", func(r chi.Router) {
					r.Use(h.shiftOnDate)
					r.Patch("/", h.UpdateShift)
					r.Delete("/", h.RemoveShift)
				})
			})

			r.Route("/users/{userID}/breaks", func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleSeniorAssistant, domain.RoleBlackCore}))
				r.Use(h.myInfo)
				r.Use(h.preventLeavedAssistant)
				r.Use(h.shiftOnDate)
				r.Put("/", h.ReplaceUserBreaks)
				r.Delete("/", h.ClearUserBreaks)
			})
		})

		r.Route("/break-warnings", func(r chi.Router) {
			r.Get("/", h.GetBreakWarnings)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.breakWarning)
				r.With(h.RequiredRole([]domain.Role{domain.RoleSeniorAssistant, domain.RoleBlackCore})).Patch("/resolve", h.ResolveBreakWarning)
			})
		})
	})
}
