package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/studyportal/internal/app/auth"
	appControllers "github.com/yigit/studyportal/internal/app/controllers"
	appMigrations "github.com/yigit/studyportal/internal/app/migrations"
	appRepos "github.com/yigit/studyportal/internal/app/repositories"
	appRoutes "github.com/yigit/studyportal/internal/app/routes"
	appServices "github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/config"
	"github.com/yigit/studyportal/internal/db"
	appMiddleware "github.com/yigit/studyportal/internal/middleware"
	pkgAuth "github.com/yigit/studyportal/internal/pkg/auth"
	"github.com/yigit/studyportal/internal/pkg/filestorage"
	"github.com/yigit/studyportal/internal/pkg/helpers"
	"github.com/yigit/studyportal/internal/pkg/llm"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	FileStorage    *filestorage.LocalStorage
	DB             *db.PostgresDB
	Redis          *redis.Client
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRedis connects the guest watchlist store.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	rdb, err := db.NewRedisClient(cfg)
	if err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		return nil, err
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established.")
	return rdb, nil
}

// NewModel builds the language model client selected by the config.
func NewModel(cfg *config.Config, lgr zerolog.Logger) (llm.Model, error) {
	if strings.ToLower(cfg.LLM.Provider) == "mock" {
		lgr.Warn().Msg("Using the mock language model; generation endpoints will fail")
		return llm.NewMockModel(), nil
	}
	return llm.NewOpenAIModel(llm.OpenAIConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		VisionModel: cfg.LLM.VisionModel,
		ImageModel:  cfg.LLM.ImageModel,
	}, logger.Component("llm"))
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, rdb *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: database, Redis: rdb, Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database, rdb, cfg.GuestTTL())

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.BaseURL())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	model, err := NewModel(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.Services = appServices.NewServices(deps.Repos, model, deps.FileStorage, deps.JWTService, lgr)

	limits := helpers.PageLimits{Default: cfg.Portal.DefaultPageSize, Max: cfg.Portal.MaxPageSize}
	s := deps.Services
	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(s.Auth, logger.Component("auth")),
		Users:      appControllers.NewUserController(s.Users, limits),
		Resources:  appControllers.NewResourceController(s.Resources, s.Watchlist, limits),
		Watchlist:  appControllers.NewWatchlistController(s.Watchlist),
		Teachers:   appControllers.NewTeacherController(s.Teachers),
		Admissions: appControllers.NewAdmissionController(s.Admissions),
		Chats:      appControllers.NewChatController(s.Chats),
		Generation: appControllers.NewGenerationController(s.Generation),
	}

	if err := seed.CreateDefaultData(context.Background(), cfg, s.Auth, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.Static(filestorage.URLPrefix, deps.FileStorage.BasePath())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/health", healthHandler(deps))

	return router
}

// healthHandler reports whether Postgres and Redis answer. Redis being down only
// degrades guest watchlists, so it does not fail the check.
func healthHandler(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "up", "redis": "up"}
		code := http.StatusOK
		if err := deps.DB.Health(ctx); err != nil {
			deps.Logger.Warn().Err(err).Msg("Health check: database unavailable")
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if deps.Redis == nil || deps.Redis.Ping(ctx).Err() != nil {
			status["redis"] = "down"
		}
		c.JSON(code, status)
	}
}
