package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/polyglotta/polyglotta-backend/db"
	"github.com/polyglotta/polyglotta-backend/internal/adapter/postgres"
	dictionaryrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/dictionary"
	practicerepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/practice"
	speechusagerepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/speechusage"
	userrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/user"
	userdictrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/userdict"
	wordrepo "github.com/polyglotta/polyglotta-backend/internal/adapter/postgres/word"
	analysisprovider "github.com/polyglotta/polyglotta-backend/internal/adapter/provider/analysis"
	speechprovider "github.com/polyglotta/polyglotta-backend/internal/adapter/provider/speech"
	"github.com/polyglotta/polyglotta-backend/internal/auth"
	"github.com/polyglotta/polyglotta-backend/internal/config"
	authservice "github.com/polyglotta/polyglotta-backend/internal/service/auth"
	"github.com/polyglotta/polyglotta-backend/internal/service/ingestion"
	"github.com/polyglotta/polyglotta-backend/internal/service/practice"
	"github.com/polyglotta/polyglotta-backend/internal/service/settings"
	"github.com/polyglotta/polyglotta-backend/internal/service/speech"
	"github.com/polyglotta/polyglotta-backend/internal/service/userdict"
	"github.com/polyglotta/polyglotta-backend/internal/transport/middleware"
	"github.com/polyglotta/polyglotta-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires repositories, services, and the HTTP server, then blocks
// until ctx is canceled and shuts everything down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := db.Migrate(cfg.Database.DSN); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	words := wordrepo.New(pool)
	entries := dictionaryrepo.New(pool)
	links := userdictrepo.New(pool)
	users := userrepo.New(pool)
	reviews := practicerepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	analyzer := analysisprovider.NewProvider(analysisprovider.Config{
		APIKey:  cfg.Analysis.APIKey,
		Model:   cfg.Analysis.Model,
		Timeout: cfg.Analysis.Timeout,
	}, logger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authSvc := authservice.NewService(logger, users, jwtManager, cfg.Auth)
	ingestionSvc := ingestion.NewService(logger, analyzer, words, entries, links, users, users, txManager,
		cfg.Dictionary)
	userdictSvc := userdict.NewService(logger, links, entries, cfg.Dictionary)
	practiceSvc := practice.NewService(logger, links, reviews, users, txManager, cfg.SRS)
	settingsSvc := settings.NewService(logger, users, cfg.Settings)

	syncer := settings.NewSyncer(logger, settingsSvc)
	syncer.Start(ctx)
	defer syncer.Stop()

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Auth:       rest.NewAuthHandler(authSvc, logger),
		Dictionary: rest.NewDictionaryHandler(ingestionSvc, userdictSvc, logger),
		Practice:   rest.NewPracticeHandler(practiceSvc, logger),
		Settings:   rest.NewSettingsHandler(settingsSvc, logger),
	}

	if cfg.Speech.SpeechEnabled() {
		tts := speechprovider.NewProvider(cfg.Speech.BaseURL, cfg.Speech.APIKey, cfg.Speech.Timeout, logger)
		usage := speechusagerepo.New(pool)
		handlers.Speech = rest.NewSpeechHandler(speech.NewService(logger, tts, usage, cfg.Speech), logger)
	} else {
		logger.Warn("speech synthesis disabled: no API key configured")
	}

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      rest.NewRouter(handlers, chain),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
