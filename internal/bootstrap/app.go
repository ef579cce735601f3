// Package bootstrap wires configuration, storage, services, and the HTTP
// router into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "candidate-onboarding/internal/auth"
	"candidate-onboarding/internal/candidates"
	"candidate-onboarding/internal/documents"
	"candidate-onboarding/internal/shared/config"
	"candidate-onboarding/internal/shared/server"
	"candidate-onboarding/internal/shared/storage/db"
	"candidate-onboarding/internal/shared/storage/object"
	localstore "candidate-onboarding/internal/shared/storage/object/local"
	s3store "candidate-onboarding/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	CandidatesRepo    candidates.Repo
	DocumentsRepo     documents.Repo
	CandidatesService *candidates.Service
	DocumentsService  *documents.Service
	CandidatesHandler *candidates.Handler
	DocumentsHandler  *documents.Handler
	GoogleAuth        *googleauth.GoogleService
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		CandidatesHandler: app.CandidatesHandler,
		DocumentsHandler:  app.DocumentsHandler,
		GoogleAuth:        app.GoogleAuth,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var candidateRepo candidates.Repo
	var documentRepo documents.Repo

	if app.DB != nil {
		candidateRepo = &candidates.PGRepo{DB: app.DB}
		documentRepo = &documents.PGRepo{DB: app.DB}
	} else {
		candidateRepo = candidates.NewMemoryRepo()
		documentRepo = documents.NewMemoryRepo()
	}

	candidateSvc := candidates.NewService(candidateRepo)
	documentSvc := &documents.Service{
		Store:      app.Store,
		Repo:       documentRepo,
		Candidates: candidateRepo,
	}

	app.CandidatesRepo = candidateRepo
	app.DocumentsRepo = documentRepo
	app.CandidatesService = candidateSvc
	app.DocumentsService = documentSvc
	app.CandidatesHandler = candidates.NewHandler(candidateSvc)
	app.DocumentsHandler = documents.NewHandler(documentSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)

	if app.CandidatesHandler == nil || app.DocumentsHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}
