package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/foxsportsgoon/goonbot/external/gemini"
	"github.com/foxsportsgoon/goonbot/external/groupme"
	"github.com/foxsportsgoon/goonbot/external/xperteleven"
	"github.com/foxsportsgoon/goonbot/internal/config"
	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
	"github.com/foxsportsgoon/goonbot/internal/domain/team"
	"github.com/foxsportsgoon/goonbot/internal/infrastructure/repository/memory"
	"github.com/foxsportsgoon/goonbot/internal/infrastructure/repository/postgres"
	"github.com/foxsportsgoon/goonbot/internal/interfaces/httpapi"
	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
	"github.com/foxsportsgoon/goonbot/internal/platform/resilience"
	"github.com/foxsportsgoon/goonbot/internal/usecase"
)

// NewHTTPServer wires the bot: scrape archive, Xpert Eleven session opener,
// Gemini and GroupMe clients, the five chat services and the HTTP surface.
// The returned cleanup closes the database handle when one was opened.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	svcLogger := logging.NewJSON(cfg.LogLevel)

	archive, db, err := newPageArchive(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func(context.Context) error {
		if db != nil {
			return db.Close()
		}
		return nil
	}

	profiles, err := team.LoadProfiles(cfg.ProfilesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load team profiles: %w", err)
	}
	aliases := team.NewAliasMap(profiles)
	logger.Info("team profiles loaded", "path", cfg.ProfilesPath, "teams", len(profiles))

	x11 := xperteleven.NewClient(xperteleven.ClientConfig{
		BaseURL:  cfg.X11BaseURL,
		Username: cfg.X11Username,
		Password: cfg.X11Password,
		Timeout:  cfg.X11Timeout,
		Logger:   svcLogger,
		Archive:  archive,
	})
	opener := usecase.OpenerFunc(func(ctx context.Context) (usecase.LeagueBrowser, error) {
		session, err := x11.Login(ctx)
		if err != nil {
			return nil, err
		}
		return session, nil
	})

	generator := gemini.NewClient(gemini.ClientConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		Logger:  svcLogger,
		Circuit: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeminiCircuitEnabled,
			FailureThreshold: cfg.GeminiCircuitFailureCount,
			OpenTimeout:      cfg.GeminiCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeminiCircuitHalfOpenMaxReq,
		},
	})

	sender := groupme.NewClient(groupme.ClientConfig{
		BaseURL: cfg.GroupMeBaseURL,
		BotID:   cfg.GroupMeBotID,
		Timeout: cfg.GroupMeTimeout,
		Logger:  svcLogger,
	})

	leagues := usecase.Leagues{
		Marquee: usecase.League{
			Name:  "Goondesliga",
			Key:   "goondesliga",
			Label: "The Goondesliga 🏆",
			URL:   cfg.GoondesligaURL,
			Lnr:   cfg.GoondesligaLnr,
		},
		Secondary: usecase.League{
			Name:  "Spoondesliga",
			Key:   "spoondesliga",
			Label: "The Spoondesliga 🥄",
			URL:   cfg.SpoondesligaURL,
			Lnr:   cfg.SpoondesligaLnr,
		},
		StatsID: cfg.StatsLeagueID,
	}

	handler := httpapi.NewHandler(
		usecase.NewRecapService(opener, sender, leagues, svcLogger),
		usecase.NewHighlightService(opener, generator, sender, aliases, leagues, svcLogger),
		usecase.NewScheduleService(opener, sender, leagues, svcLogger),
		usecase.NewPreviewService(opener, generator, sender, aliases, leagues, svcLogger),
		usecase.NewLeaderboardService(opener, sender, leagues, svcLogger),
		logger,
	)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

// newPageArchive opens the Postgres archive when DB_URL is set and falls
// back to the in-memory archive otherwise.
func newPageArchive(cfg config.Config, logger *slog.Logger) (rawdata.Repository, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("page archive in memory", "reason", "DB_URL empty")
		return memory.NewPageArchiveRepository(), nil, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("page archive in postgres", "db", dbNameFromURL(dbURL))

	return postgres.NewPageArchiveRepository(db), db, nil
}
