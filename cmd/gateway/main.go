package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	api "github.com/vital-check/vitalcheck-api/internal/api/http"
	"github.com/vital-check/vitalcheck-api/internal/assessment/catalog"
	"github.com/vital-check/vitalcheck-api/internal/audit"
	auth "github.com/vital-check/vitalcheck-api/internal/auth/middleware"
	"github.com/vital-check/vitalcheck-api/internal/config"
	"github.com/vital-check/vitalcheck-api/internal/db"
	"github.com/vital-check/vitalcheck-api/internal/journal"
	"github.com/vital-check/vitalcheck-api/internal/rbac"
	"github.com/vital-check/vitalcheck-api/internal/session"
	"github.com/vital-check/vitalcheck-api/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := newLogger(cfg.LogLevel)

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("db open failed")
	}

	sessions := session.NewSQLStore(dbh, catalog.Get)
	readings := journal.NewSQLStore(dbh)
	events := audit.NewEventRepo(dbh, cfg.SiteID)

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("blob store")
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(api.RequestLogger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, auth.AdminBootstrap{
		Username: cfg.AdminUser,
		PassHash: cfg.AdminPassHash,
	}))

	// Protected API (JWT -> subject+role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("questionnaire:view")).
			Get("/questionnaires", api.ListQuestionnairesHandler())
		pr.With(rbac.Require("questionnaire:view")).
			Get("/questionnaires/{questionnaireID}", api.GetQuestionnaireHandler())

		// Assessment flow
		pr.With(rbac.Require("session:create")).
			Post("/sessions", api.StartSessionHandler(sessions))
		pr.With(rbac.Require("session:answer")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(sessions))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/answers", api.AnswerHandler(sessions))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/advance", api.AdvanceHandler(sessions))
		pr.With(rbac.Require("session:answer")).
			Post("/sessions/{sessionID}/back", api.BackHandler(sessions))
		pr.With(rbac.Require("session:submit")).
			Post("/sessions/{sessionID}/submit", api.SubmitSessionHandler(sessions, events))
		pr.With(rbac.Require("session:create")).
			Post("/sessions/{sessionID}/retake", api.RetakeHandler(sessions))

		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results", api.ListResultsHandler(sessions))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results/{resultID}", api.GetResultHandler(sessions))

		// Journal
		pr.With(rbac.Require("reading:write")).
			Post("/readings", api.AddReadingHandler(readings, events))
		pr.With(rbac.RequireAny("reading:view-own", "reading:view-all")).
			Get("/readings", api.ListReadingsHandler(readings))
		pr.With(rbac.Require("reading:write")).
			Delete("/readings/{readingID}", api.DeleteReadingHandler(readings, events))
		pr.With(rbac.RequireAny("reading:view-own", "reading:view-all")).
			Get("/health-score", api.HealthScoreHandler(readings))

		// Export
		pr.With(rbac.RequireAny("export:own", "export:all")).
			Get("/export/readings", api.ExportReadingsHandler(readings, blobs))
		pr.With(rbac.RequireAny("export:own", "export:all")).
			Get("/export/results/{resultID}", api.ExportResultHandler(sessions, blobs))

		// Users (admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))

		pr.With(rbac.Require("audit:view")).
			Get("/audit", api.RecentEventsHandler(events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("db", cfg.DBDriver).
		Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
