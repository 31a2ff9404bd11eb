// @title           TutorLink API
// @version         1.0
// @description     Tutor marketplace: accounts, password reset, tutor search and administration.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tutorlink/tutorlink-api/internal/api"
	"github.com/tutorlink/tutorlink-api/internal/app"
	"github.com/tutorlink/tutorlink-api/internal/pkg/config"
	"github.com/tutorlink/tutorlink-api/pkg/logger"

	_ "github.com/tutorlink/tutorlink-api/docs"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "tutorlink-api",
	})

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	svc := app.NewServices(cfg, stores, log)
	e := api.NewRouter(api.Dependencies{
		Accounts:      svc.Accounts,
		Resets:        svc.Resets,
		Directory:     svc.Directory,
		Sessions:      svc.Sessions,
		RateCounter:   stores.RateCounter,
		AuthRateLimit: cfg.Auth.RateLimit,
		HealthChecks:  stores.HealthChecks,
		JWTSecret:     cfg.Auth.JWTSecret,
		ResetURL:      cfg.Reset.URLBase,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server stopped")
}
