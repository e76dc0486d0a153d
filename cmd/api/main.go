// @title Dose Ágil API
// @version 1.0
// @description Medicamentos, horarios de toma, historial y avisos push.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dose-agil/internal/adapters/auth/gotrue"
	"dose-agil/internal/adapters/auth/supabase"
	"dose-agil/internal/adapters/push/expo"
	"dose-agil/internal/adapters/push/logpush"
	pg "dose-agil/internal/adapters/storage/postgres"
	"dose-agil/internal/config"
	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/domain/schedule"
	"dose-agil/internal/platform/logger"
	"dose-agil/internal/platform/metrics"
	"dose-agil/internal/ports/auth"
	"dose-agil/internal/router"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dose-agil",
		Short: "API de recordatorios de medicamentos",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(nextDoseCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP y el dispatcher de avisos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Aplica migraciones pendientes al arrancar (solo con DB_DSN)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.DBDSN) == "" {
				return errors.New("DB_DSN is required")
			}

			ctx := context.Background()
			db, err := pg.Open(ctx, cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := pg.Migrate(ctx, db)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if len(applied) == 0 {
				fmt.Println("No pending migrations.")
				return nil
			}
			for _, name := range applied {
				fmt.Printf("applied %s\n", name)
			}
			return nil
		},
	}
}

func nextDoseCmd() *cobra.Command {
	var (
		hours []string
		at    string
		tz    string
	)
	cmd := &cobra.Command{
		Use:   "next-dose",
		Short: "Calcula la próxima toma para una lista de horarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := cliLocation(tz)
			if err != nil {
				return err
			}
			out, err := nextDose(hours, at, loc, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&hours, "hours", nil, "Horarios HH:MM separados por coma")
	cmd.Flags().StringVar(&at, "at", "", "Instante de referencia YYYY-MM-DDTHH:MM (default: ahora)")
	cmd.Flags().StringVar(&tz, "tz", "", "Zona horaria IANA (default: TIMEZONE de la config)")
	return cmd
}

// cliLocation: --tz gana; si no viene, la zona configurada.
func cliLocation(tz string) (*time.Location, error) {
	if tz = strings.TrimSpace(tz); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("--tz %q: %w", tz, err)
		}
		return loc, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg.Location(), nil
}

// nextDose interpreta --at y now en loc; el resultado sale en esa misma zona.
func nextDose(hours []string, at string, loc *time.Location, now time.Time) (string, error) {
	now = now.In(loc)
	if strings.TrimSpace(at) != "" {
		t, err := time.ParseInLocation("2006-01-02T15:04", at, loc)
		if err != nil {
			return "", fmt.Errorf("--at must be YYYY-MM-DDTHH:MM: %w", err)
		}
		now = t
	}

	next, ok, err := schedule.NextDoseStrings(hours, now)
	if err != nil {
		return "", err
	}
	if !ok {
		return "no schedule", nil
	}
	return next.In(loc).Format("2006-01-02 15:04"), nil
}

func runServer(autoMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	loc := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if dsn := strings.TrimSpace(cfg.DBDSN); dsn != "" {
		db, err = pg.Open(ctx, dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		if autoMigrate {
			applied, err := pg.Migrate(ctx, db)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			if len(applied) > 0 {
				log.Info("migrations applied", map[string]any{"versions": applied})
			}
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var verifier auth.AuthVerifier
	switch {
	case cfg.DevAuth():
		log.Warn("AUTH_JWT_SECRET and SUPABASE_URL not set, dev auth via X-Debug-User-ID", nil)
	case cfg.RemoteAuth():
		c, err := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseAnonKey,
		})
		if err != nil {
			return err
		}
		verifier = gotrue.NewVerifier(c)
	default:
		v, err := supabase.NewVerifier(supabase.Options{
			Secret:   cfg.AuthJWTSecret,
			Audience: cfg.AuthAudience,
			Issuer:   cfg.AuthIssuer,
			Leeway:   30 * time.Second,
		})
		if err != nil {
			return err
		}
		verifier = v
	}

	var pusher reminders.Pusher
	if strings.TrimSpace(cfg.ExpoPushURL) != "" || strings.TrimSpace(cfg.ExpoAccessToken) != "" {
		c, err := expo.NewClient(expo.Config{
			PushURL:     cfg.ExpoPushURL,
			AccessToken: cfg.ExpoAccessToken,
		})
		if err != nil {
			return err
		}
		pusher = c
	} else {
		pusher = logpush.New(log)
	}

	lead := cfg.ReminderLead()
	if lead == 0 {
		lead = reminders.NoLead
	}

	app := router.Build(router.Options{
		AuthVerifier:       verifier,
		DB:                 db,
		Logger:             log,
		Metrics:            metrics.New(),
		Pusher:             pusher,
		Location:           loc,
		ReminderLead:       lead,
		ReminderStaleAfter: cfg.ReminderStaleAfter(),
		ReminderBatch:      cfg.ReminderBatch,
	})

	dispatcher, err := reminders.NewDispatcher(app.Reminders, reminders.DispatcherOptions{
		Spec:     cfg.ReminderSchedule,
		Location: loc,
		Logger:   log.With(map[string]any{"module": "dispatcher"}),
	})
	if err != nil {
		return err
	}
	dispatcher.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "timezone": loc.String()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = dispatcher.Stop(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", map[string]any{"error": err})
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("dispatcher stop failed", map[string]any{"error": err})
	}
	return nil
}
