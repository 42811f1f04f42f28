package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/tjorim/rota-backend/internal/config"
	"github.com/tjorim/rota-backend/internal/domain"
	"github.com/tjorim/rota-backend/internal/repository"
	"github.com/tjorim/rota-backend/internal/rotation"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	engine      *rotation.Engine
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	now         func() time.Time // 方便测试时注入固定时间

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, engine *rotation.Engine, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
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
		engine:      engine,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		now:         time.Now,

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
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // 所有成员都有权限获取其他人的基本信息
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/day/{date}", h.GetDaySchedule)
			r.Route("/teams/{team}", func(r chi.Router) {
				r.Get("/next", h.GetNextWorkingShift)
				r.Get("/off-progress", h.GetOffDayProgress)
				r.Get("/current", h.GetCurrentStatus)
				r.Get("/members", h.GetTeamMembers)
			})
			r.With(h.myInfo).Get("/calendar/{year}/{month}", h.GetMonthCalendar)
		})

		r.With(h.myInfo).Get("/transfers", h.GetTransfers)

		r.Route("/time-off", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.preventInactiveUser)
			r.Post("/", h.CreateTimeOffRecord)
			r.Get("/", h.GetMyTimeOffRecords)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timeOffRecord)
				r.Get("/", h.GetTimeOffRecord)
				r.Patch("/", h.UpdateTimeOffRecord)
				r.Delete("/", h.DeleteTimeOffRecord)
			})
		})
	})
}
