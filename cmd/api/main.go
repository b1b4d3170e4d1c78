// @title Classics Study API
// @version 1.0
// @description Study sessions over a bank of classical Chinese texts and their quiz questions.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"classics-study/internal/adapter"
	"classics-study/internal/bank"
	"classics-study/internal/cache"
	"classics-study/internal/config"
	"classics-study/internal/database"
	"classics-study/internal/handler"
	"classics-study/internal/logger"
	"classics-study/internal/middleware"
	"classics-study/internal/repository"
	"classics-study/internal/service"

	_ "classics-study/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const janitorInterval = 5 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Content
	source, err := bank.NewSource(cfg.Content)
	if err != nil {
		appLogger.Fatal("Failed to configure content source", zap.Error(err))
	}
	loadCtx, cancelLoad := context.WithTimeout(rootCtx, 30*time.Second)
	questionBank, err := bank.NewLoader(source).Load(loadCtx)
	cancelLoad()
	if err != nil {
		appLogger.Fatal("Failed to load question bank", zap.String("source", source.Describe()), zap.Error(err))
	}

	// Session store
	var store service.SessionStore
	switch cfg.Session.Store {
	case "redis":
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis")
		store = service.NewCacheSessionStore(adapter.NewRedisCacheAdapter(redisClient), cfg.Session.TTL)
	default:
		memStore := service.NewMemorySessionStore(cfg.Session.TTL)
		go memStore.RunJanitor(rootCtx, janitorInterval)
		store = memStore
	}
	appLogger.Info("Session store initialized", zap.String("store", cfg.Session.Store), zap.Duration("ttl", cfg.Session.TTL))

	// Attempt history
	var (
		recorder       service.AttemptRecorder
		attemptHandler *handler.AttemptHandler
		historyPing    handler.Pinger
	)
	if cfg.HistoryEnabled() {
		db, err := database.NewSQLXSQLiteDB(rootCtx, cfg.DB.Path)
		if err != nil {
			appLogger.Fatal("Failed to open history database", zap.Error(err))
		}
		defer db.Close()
		if err := database.RunMigrations(db.DB); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
		history := service.NewHistoryService(repository.NewSQLXAttemptRepository(db))
		recorder = history
		attemptHandler = handler.NewAttemptHandler(history)
		historyPing = handler.PingFunc(db.PingContext)
		appLogger.Info("Attempt history enabled", zap.String("path", cfg.DB.Path))
	} else {
		appLogger.Info("Attempt history disabled")
	}

	sessionService := service.NewSessionService(questionBank, store, recorder)
	contentService := service.NewContentService(questionBank)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Server.CORSOrigins, AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Raw texts document, for clients that still fetch it directly.
	if fsSource, ok := source.(*bank.FSSource); ok {
		app.Use("/data", filesystem.New(filesystem.Config{
			Root:   http.FS(fsSource.PublicFS()),
			MaxAge: 3600,
		}))
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	health := handler.NewHealthHandler(len(questionBank.Texts()), len(questionBank.Questions()), map[string]handler.Pinger{
		"sessions": store,
		"history":  historyPing,
	})
	app.Get("/api/health", health.Check)

	handler.RegisterRoutes(app.Group("/api"),
		handler.NewSessionHandler(sessionService),
		handler.NewContentHandler(contentService),
		attemptHandler,
	)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("content", source.Describe()),
			zap.Int("texts", len(questionBank.Texts())),
			zap.Int("questions", len(questionBank.Questions())),
		)
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
