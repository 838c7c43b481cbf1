package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"legalens-backend/internal/accounts"
	"legalens-backend/internal/analysis"
	googleauth "legalens-backend/internal/auth"
	"legalens-backend/internal/blog"
	"legalens-backend/internal/chat"
	"legalens-backend/internal/compare"
	"legalens-backend/internal/documents"
	"legalens-backend/internal/llm"
	gemini "legalens-backend/internal/llm/gemini"
	openai "legalens-backend/internal/llm/openai"
	"legalens-backend/internal/profiles"
	"legalens-backend/internal/shared/config"
	"legalens-backend/internal/shared/server"
	"legalens-backend/internal/shared/storage/db"
	"legalens-backend/internal/shared/storage/object"
	localstore "legalens-backend/internal/shared/storage/object/local"
	s3store "legalens-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	AccountsRepo accounts.Repo
	DocumentRepo documents.Repo
	BlogRepo     blog.Repo
	ProfileRepo  profiles.Repo

	Analyzer        *analysis.Client
	AccountsService *accounts.Service
	DocumentService *documents.Service
	ChatService     *chat.Service
	CompareService  *compare.Service
	ProfileService  *profiles.Service
	BlogService     *blog.Service

	AccountsHandler *accounts.Handler
	DocumentHandler *documents.Handler
	ChatHandler     *chat.Handler
	CompareHandler  *compare.Handler
	BlogHandler     *blog.Handler
	ProfileHandler  *profiles.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares shared dependencies and the router.
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

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AccountsHandler: app.AccountsHandler,
		DocumentHandler: app.DocumentHandler,
		ChatHandler:     app.ChatHandler,
		CompareHandler:  app.CompareHandler,
		BlogHandler:     app.BlogHandler,
		ProfileHandler:  app.ProfileHandler,
		GoogleAuth:      app.GoogleAuth,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using file-backed repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using file-backed repositories: %v", err)
			return nil, nil
		}
		return nil, err
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

// buildLLM selects the generative-model provider. A missing key in a
// dev-like environment means degraded service via fallbacks, not a
// startup failure.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: OPENAI_API_KEY empty; analysis will use fallbacks")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("OPENAI_API_KEY is required for LLM_PROVIDER=openai")
		}
		return openai.NewClient(key, cfg.LLMModel)
	case "none":
		return llm.PlaceholderClient{}, nil
	default:
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GEMINI_API_KEY empty; analysis will use fallbacks")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required for LLM_PROVIDER=gemini")
		}
		return gemini.NewClient(ctx, key, cfg.LLMModel)
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.AccountsRepo = &accounts.PGRepo{DB: app.DB}
		app.DocumentRepo = &documents.PGRepo{DB: app.DB}
		app.BlogRepo = &blog.PGRepo{DB: app.DB}
		app.ProfileRepo = &profiles.PGRepo{DB: app.DB}
	} else {
		accountsRepo, err := accounts.NewFileRepo(app.Config.DataDir)
		if err != nil {
			return fmt.Errorf("accounts file repo: %w", err)
		}
		documentRepo, err := documents.NewFileRepo(app.Config.DataDir)
		if err != nil {
			return fmt.Errorf("documents file repo: %w", err)
		}
		app.AccountsRepo = accountsRepo
		app.DocumentRepo = documentRepo
		app.BlogRepo = blog.NewMemoryRepo()
		app.ProfileRepo = profiles.NewMemoryRepo()
	}

	app.Analyzer = analysis.NewClient(app.LLM)
	app.DocumentService = &documents.Service{
		Store:    app.Store,
		Repo:     app.DocumentRepo,
		Analyzer: app.Analyzer,
	}
	app.AccountsService = accounts.NewService(app.AccountsRepo)
	app.ChatService = chat.NewService(app.LLM, app.DocumentService)
	app.CompareService = compare.NewService(app.LLM, app.DocumentService)
	app.ProfileService = profiles.NewService(app.ProfileRepo)
	app.BlogService = blog.NewService(app.BlogRepo, app.ProfileService)

	app.AccountsHandler = accounts.NewHandler(app.AccountsService)
	app.DocumentHandler = documents.NewHandler(app.DocumentService)
	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.CompareHandler = compare.NewHandler(app.CompareService)
	app.BlogHandler = blog.NewHandler(app.BlogService)
	app.ProfileHandler = profiles.NewHandler(app.ProfileService)

	if app.Config.GoogleClientID != "" || app.Config.GoogleClientSecret != "" {
		app.GoogleAuth = googleauth.NewGoogleService(
			app.Config.GoogleClientID,
			app.Config.GoogleClientSecret,
			app.Config.GoogleRedirectURL,
			app.Config.UIRedirectURL,
		)
	}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
