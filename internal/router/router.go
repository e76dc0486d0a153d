package router

import (
	"database/sql"
	"net/http"
	"time"

	"dose-agil/internal/adapters/push/logpush"
	mem "dose-agil/internal/adapters/storage/memory"
	pg "dose-agil/internal/adapters/storage/postgres"
	_ "dose-agil/internal/docs"
	"dose-agil/internal/domain/medicines"
	"dose-agil/internal/domain/profiles"
	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/middleware"
	"dose-agil/internal/platform/logger"
	"dose-agil/internal/platform/metrics"
	"dose-agil/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Metrics *metrics.Metrics
	Pusher  reminders.Pusher // nil => solo loguea los avisos

	Location           *time.Location
	ReminderLead       time.Duration
	ReminderStaleAfter time.Duration
	ReminderBatch      int
}

// App es el router armado más los servicios que necesita el proceso
// (el dispatcher de avisos corre fuera del ciclo HTTP).
type App struct {
	Handler   http.Handler
	Reminders *reminders.Service
}

func NewRouter(opts Options) http.Handler {
	return Build(opts).Handler
}

func Build(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	pusher := opts.Pusher
	if pusher == nil {
		pusher = logpush.New(log)
	}

	var (
		medicineRepo medicines.Repository
		reminderRepo reminders.Repository
		profileRepo  profiles.Repository
	)
	if opts.DB != nil {
		medicineRepo = pg.NewMedicinesRepo(opts.DB)
		reminderRepo = pg.NewRemindersRepo(opts.DB)
		profileRepo = pg.NewProfilesRepo(opts.DB)
	} else {
		medicineRepo = mem.NewMedicineRepo()
		reminderRepo = mem.NewReminderRepo()
		profileRepo = mem.NewProfileRepo()
	}

	// Services por módulo
	remindersSvc := reminders.NewService(reminderRepo, pusher, reminders.Options{
		Lead:       opts.ReminderLead,
		StaleAfter: opts.ReminderStaleAfter,
		Batch:      opts.ReminderBatch,
		Location:   opts.Location,
		Logger:     log.With(map[string]any{"module": "reminders"}),
		Metrics:    opts.Metrics,
	})
	medicinesSvc := medicines.NewService(medicineRepo, medicines.Deps{
		Reminders: remindersSvc,
		Logger:    log.With(map[string]any{"module": "medicines"}),
		Metrics:   opts.Metrics,
		Location:  opts.Location,
	})
	profilesSvc := profiles.NewService(profileRepo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(opts.Metrics.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.AccessLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	medicines.RegisterRoutes(r, medicinesSvc)
	reminders.RegisterRoutes(r, remindersSvc)
	profiles.RegisterRoutes(r, profilesSvc)

	return &App{
		Handler:   r,
		Reminders: remindersSvc,
	}
}
