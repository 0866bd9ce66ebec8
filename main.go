package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"filter-backend/internal/account"
	"filter-backend/internal/catalog"
	"filter-backend/internal/config"
	"filter-backend/internal/database"
	"filter-backend/internal/events"
	"filter-backend/internal/logger"
	"filter-backend/internal/metrics"
	"filter-backend/internal/order"
	"filter-backend/internal/otp"
	"filter-backend/internal/ratelimit"
	"filter-backend/internal/server"
	"filter-backend/internal/store"
	"filter-backend/internal/store/memstore"
	"filter-backend/internal/store/mongostore"
	"filter-backend/internal/upload"
	"filter-backend/internal/workshop"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}
	cfg := config.AppEnv

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("store init failed", zap.Error(err))
	}
	defer closeStore()

	uploader, uploadDir, err := openUploader(ctx, cfg.Upload)
	if err != nil {
		logger.Log.Fatal("uploader init failed", zap.Error(err))
	}

	limiter, closeLimiter := openLimiter(cfg)
	defer closeLimiter()

	publisher, closePublisher := openPublisher(cfg.NATSURL)
	defer closePublisher()

	tokens := account.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	router := server.NewRouter(server.Deps{
		Accounts:  account.NewService(st, st, uploader, tokens, cfg.BcryptCost),
		Catalog:   catalog.NewService(st, uploader),
		Orders:    order.NewService(st, st, publisher),
		Directory: workshop.NewDirectory(st),
		OTP:       otp.NewService(cfg.OTPStaticCode),
		Store:     st,
		Limiter:   limiter,
		Metrics:   metrics.New(),
		JWTSecret: cfg.JWTSecret,
		UploadDir: uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), func() {}, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.DBName)
	logger.Info("mongodb connected", zap.String("db", db.Name()))

	if err := database.EnsureIndexes(db); err != nil {
		logger.Warn("index setup incomplete", zap.Error(err))
	}

	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}
	return mongostore.New(db), closeFn, nil
}

// openUploader returns the uploader and, for the disk driver, the directory
// to serve under /uploads.
func openUploader(ctx context.Context, cfg config.UploadConfig) (upload.Uploader, string, error) {
	if cfg.Driver == "minio" {
		uploader, err := upload.NewMinioUploader(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, "", err
		}
		logger.Info("image uploads go to minio", zap.String("endpoint", cfg.MinioEndpoint), zap.String("bucket", cfg.MinioBucket))
		return uploader, "", nil
	}
	logger.Info("image uploads go to disk", zap.String("dir", cfg.Dir))
	return upload.NewDiskUploader(cfg.Dir, cfg.PublicURL), cfg.Dir, nil
}

func openLimiter(cfg config.Config) (ratelimit.Limiter, func()) {
	if cfg.RedisAddr == "" {
		return ratelimit.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	logger.Info("rate limiting through redis", zap.String("addr", cfg.RedisAddr))
	return ratelimit.NewRedisLimiter(client, cfg.RateLimitBurst, time.Second), func() {
		if err := client.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}
}

func openPublisher(url string) (events.Publisher, func()) {
	if url == "" {
		return events.NopPublisher{}, func() {}
	}
	publisher, err := events.Connect(url)
	if err != nil {
		logger.Warn("nats unavailable, order events disabled", zap.Error(err))
		return events.NopPublisher{}, func() {}
	}
	return publisher, publisher.Close
}
