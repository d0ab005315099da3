package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := cmd.NewLogger(config.Log)
	defer func() {
		_ = logger.Sync()
	}()

	gormDB, err := openDatabase(config.Database)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	var redisClient redis.UniversalClient
	if config.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		if err = redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("connect redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
	}

	app, err := cmd.NewCompositionRoot(config, gormDB, redisClient, logger)
	if err != nil {
		logger.Fatal("compose application", zap.Error(err))
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(app, config.HTTP.Port, logger)
}

func openDatabase(config cmd.DatabaseConfig) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)

	if err = gormDB.AutoMigrate(postgres.Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *zap.Logger) {
	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), app.JWTConfig(), app.Gatherer(), logger)
	if err != nil {
		logger.Fatal("build router", zap.Error(err))
	}
	e.Logger.SetLevel(log.ERROR)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", zap.String("port", port))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
}
