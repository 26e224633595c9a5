package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	_ "github.com/lib/pq"

	"tender-adjudication-api/internal/config"
	"tender-adjudication-api/internal/controller"
	"tender-adjudication-api/internal/deadline"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo"
	"tender-adjudication-api/internal/scoring"
	"tender-adjudication-api/internal/service"
	"tender-adjudication-api/pkg/http_server"
	"tender-adjudication-api/pkg/postgres"
)

func runMigrations(pg *postgres.Postgres, log *slog.Logger) {
	driver, err := pgmigrate.WithInstance(pg.Database, &pgmigrate.Config{})
	if err != nil {
		log.Error("migration driver init failed", "error", err)
		os.Exit(1)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Error("migration setup failed", "error", err)
		os.Exit(1)
	}

	if err := migrations.Up(); err != nil && err != migrate.ErrNoChange {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}
}

func Run() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	log.Info("connecting database")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	log.Info("running migrations")
	runMigrations(postgresDB, log)

	deadlines, err := deadline.NewResolver(cfg.DeadlineTZ)
	if err != nil {
		log.Error("deadline resolver init failed", "error", err)
		os.Exit(1)
	}

	var aiScorer scoring.Scorer
	if cfg.AIEnabled() {
		aiScorer = scoring.NewAIScorer(scoring.AIScorerConfig{
			BaseURL: cfg.AIBaseURL,
			Model:   cfg.AIModel,
			APIKey:  cfg.AIAPIKey,
		})
	} else {
		log.Warn("ai scoring not configured, every proposal will be rubric-scored")
	}
	scorer := scoring.NewSelector(aiScorer, scoring.NewRubricScorer(), cfg.AITimeout, log)

	dispatcher := notify.NewAsyncDispatcher(notify.NewSlogDispatcher(log), cfg.NotifyTimeout)

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(service.Deps{
		Repos:     repositories,
		Deadlines: deadlines,
		Scorer:    scorer,
		Notifier:  dispatcher,
		Log:       log,
	})

	handler := echo.New()
	controller.SetupRoutesHandlers(handler, services)

	log.Info("starting server", "address", cfg.ServerAddress)
	httpServer := http_server.New(handler, cfg.ServerAddress)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("got signal", "signal", s.String())
	case err = <-httpServer.Notify():
		log.Error("server error", "error", err)
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
		return
	}
	log.Info("successful shutdown")
}
