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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/seojin/tastemap/docs" // generated swagger docs
	appControllers "github.com/seojin/tastemap/internal/app/controllers"
	appMigrations "github.com/seojin/tastemap/internal/app/migrations"
	appRepos "github.com/seojin/tastemap/internal/app/repositories"
	appRoutes "github.com/seojin/tastemap/internal/app/routes"
	appServices "github.com/seojin/tastemap/internal/app/services"
	"github.com/seojin/tastemap/internal/config"
	"github.com/seojin/tastemap/internal/db"
	appMiddleware "github.com/seojin/tastemap/internal/middleware"
	"github.com/seojin/tastemap/internal/pkg/events"
	"github.com/seojin/tastemap/internal/pkg/filestorage"
	"github.com/seojin/tastemap/internal/pkg/helpers"
	"github.com/seojin/tastemap/internal/pkg/kakao"
	"github.com/seojin/tastemap/internal/pkg/logger"
	"github.com/seojin/tastemap/internal/pkg/session"
	"github.com/seojin/tastemap/internal/pkg/ws"
	"github.com/seojin/tastemap/internal/seed"
)

// Dependencies holds everything the server needs after wiring
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Sessions       *session.Manager
	Producer       *events.Producer
	Hub            *ws.Hub
	FileStorage    *filestorage.LocalStorage
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	appMiddleware.SetErrorVerbosity(cfg.IsDevelopment())

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.IsDevelopment() {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Warn().Err(err).Msg("Failed to seed default data")
		}
	}

	return dbPool, nil
}

// newSessionManager builds the configured session store
func newSessionManager(cfg *config.Config, lgr zerolog.Logger) (*session.Manager, error) {
	ttl := helpers.ParseDuration(cfg.Session.TTL, 720*time.Hour)

	var store session.Store
	switch strings.ToLower(cfg.Session.Store) {
	case "redis":
		redisStore, err := session.NewRedisStore(session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis session store: %w", err)
		}
		store = redisStore
		lgr.Info().Str("addr", cfg.Session.RedisAddr).Msg("Using Redis session store")
	default:
		store = session.NewMemoryStore()
		lgr.Info().Msg("Using in-memory session store")
	}

	return session.NewManager(store, ttl), nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	fileStorageBaseURL := baseURL + "/uploads" // must match the static file route
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Sessions, err = newSessionManager(cfg, lgr)
	if err != nil {
		return nil, err
	}

	kakaoClient := kakao.NewClient(kakao.Config{
		RESTAPIKey:      cfg.Kakao.RESTAPIKey,
		LocalBaseURL:    cfg.Kakao.LocalBaseURL,
		MobilityBaseURL: cfg.Kakao.MobilityBaseURL,
		Timeout:         helpers.ParseDuration(cfg.Kakao.Timeout, 5*time.Second),
	}, lgr)

	deps.Producer = events.NewProducer(events.Config{
		Brokers: cfg.KafkaBrokerList(),
		Topic:   cfg.Kafka.Topic,
	}, lgr)
	if deps.Producer == nil {
		lgr.Info().Msg("Kafka brokers not configured, guild activity events disabled")
	}

	deps.Hub = ws.NewHub(lgr)
	go deps.Hub.Run()

	deps.Services = appServices.NewServices(deps.Repos, appServices.Dependencies{
		Pool:        dbPool,
		Sessions:    deps.Sessions,
		Storage:     deps.FileStorage,
		KakaoClient: kakaoClient,
		Producer:    deps.Producer,
		Hub:         deps.Hub,
		Logger:      lgr,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions, cfg.Session.CookieName)

	cookie := appControllers.SessionCookieSettings{
		Name:   cfg.Session.CookieName,
		MaxAge: int(deps.Sessions.TTL().Seconds()),
		Secure: cfg.Session.CookieSecure,
	}

	deps.Controllers = appRoutes.Controllers{
		Auth:           appControllers.NewAuthController(deps.Services.AuthService, cookie),
		Guild:          appControllers.NewGuildController(deps.Services.GuildService),
		GuildRecord:    appControllers.NewGuildRecordController(deps.Services.GuildRecordService),
		GuildMission:   appControllers.NewGuildMissionController(deps.Services.GuildMissionService),
		Notification:   appControllers.NewNotificationController(deps.Services.NotificationService, deps.Hub, lgr),
		Stay:           appControllers.NewStayController(deps.Services.StayService),
		Taste:          appControllers.NewTasteController(deps.Services.TasteService),
		Recommendation: appControllers.NewRecommendationController(deps.Services.RecommendationService),
		File:           appControllers.NewFileController(deps.Services.FileService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.Recovery())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
