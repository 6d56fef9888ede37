package handler

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	ptBR "github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/config"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/contract"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	contracts   *contract.Renderer

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	locale := ptBR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("pt_BR")
	if err := ptBRTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	renderer := contract.NewRenderer(contract.Company{
		LegalName:  cfg.Company.LegalName,
		CNPJ:       cfg.Company.CNPJ,
		Street:     cfg.Company.Street,
		Number:     cfg.Company.Number,
		Complement: cfg.Company.Complement,
		City:       cfg.Company.City,
		State:      cfg.Company.State,
		PostalCode: cfg.Company.PostalCode,
	})

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		contracts:   renderer,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(h.config.Server.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateTeam)
			r.Get("/", h.GetAllTeams)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.team)
				r.Get("/", h.GetTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateTeam)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteTeam)
				r.Route("/shifts", func(r chi.Router) {
					r.Use(h.myInfo)
					r.Get("/", h.GetTeamShifts)
					r.Post("/", h.CreateShift)
				})
			})
		})

		r.Get("/shifts", h.GetShiftsCalendar)
		r.Route("/shifts/{id}", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.shift)
			r.Patch("/", h.MoveShift)
			r.Delete("/", h.DeleteShift)
		})

		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.GetAllHolidays)
			r.Get("/validate", h.ValidateHolidayDate)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateHoliday)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.holiday)
				r.Get("/", h.GetHoliday)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateHoliday)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteHoliday)
			})
		})

		r.Route("/physiotherapists", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreatePhysiotherapist)
			r.Get("/", h.GetAllPhysiotherapists)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.physiotherapist)
				r.Get("/", h.GetPhysiotherapist)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdatePhysiotherapist)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeletePhysiotherapist)
			})
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.With(h.physiotherapist).Get("/rpa/{id}", h.DownloadRPAContract)
			r.With(h.physiotherapist).Get("/pj/{id}", h.DownloadPJContract)
		})

		r.Route("/payments/{month}", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Use(h.paymentMonth)
			r.Get("/", h.GetMonthlyPayments)
			r.Post("/cnab", h.DownloadRemittanceFile)
			r.Get("/cnab", h.DownloadRemittanceFile)
			r.Post("/send-emails", h.SendPaymentReceipts)
			r.Get("/records", h.GetPaymentRecords)
			r.Route("/records/{recordID}", func(r chi.Router) {
				r.Use(h.paymentRecord)
				r.Patch("/", h.UpdatePaymentRecordStatus)
				r.Post("/rpa-text", h.ApplyRPAReceiptText)
			})
		})
	})
}
