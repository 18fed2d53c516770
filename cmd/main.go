package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/ppjudge.net/internal/adapter/caseloader"
	"gitlab.com/ppjudge.net/internal/adapter/executor"
	miniosubmission "gitlab.com/ppjudge.net/internal/adapter/minio/submissionblob"
	pgrunbackend "gitlab.com/ppjudge.net/internal/adapter/postgres/runbackend"
	redisruncache "gitlab.com/ppjudge.net/internal/adapter/redis/runcache"
	"gitlab.com/ppjudge.net/internal/adapter/runstore"
	"gitlab.com/ppjudge.net/internal/adapter/submissionlog"
	"gitlab.com/ppjudge.net/internal/adapter/userstatus"
	"gitlab.com/ppjudge.net/internal/config"
	"gitlab.com/ppjudge.net/internal/core/ports/secondary"
	"gitlab.com/ppjudge.net/internal/core/services/judge"
	logger2 "gitlab.com/ppjudge.net/internal/global/logger"
	http2 "gitlab.com/ppjudge.net/internal/http"
)

func main() {
	InitReader()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting judge service")

	logger := logger2.Logger
	sysCfg := config.NewSystemConfig()
	judgeCfg := sysCfg.JudgeConfig
	ctxBg := context.Background()

	// SECONDARY PORTS
	loader := caseloader.NewFileCaseLoader(judgeCfg.ProblemDir, logger)
	codeExecutor := executor.NewLocalExecutor(logger)

	runCache := setupRunCache(sysCfg)
	runBackend, err := setupRunBackend(sysCfg)
	if err != nil {
		panic(err)
	}
	runStore := runstore.NewTwoTierStore(runCache, runBackend, logger)

	blobs, err := setupBlobStore(ctxBg, sysCfg)
	if err != nil {
		panic(err)
	}
	submissionStore := submissionlog.NewStore(blobs, logger)

	statusStore, err := userstatus.NewFileStore(judgeCfg.DataDir, logger)
	if err != nil {
		panic(err)
	}

	// services
	judgeSvc := judge.NewJudgeService(
		loader,
		loader,
		codeExecutor,
		runStore,
		submissionStore,
		statusStore,
		logger,
		judgeCfg.TimeLimitMs,
		judgeCfg.Language,
	)
	serviceProvider := http2.NewServiceProvider(judgeSvc, judgeCfg.DefaultProblemSet)

	// server
	httpServer := http2.NewServer(8082, "judgeService", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupRunCache selects the fast tier of the run store
func setupRunCache(cfg *config.AppConfig) secondary.RunCache {
	if cfg.JudgeConfig.RunCache == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Url,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		return redisruncache.NewRunCache(redisClient, logger2.Logger)
	}
	return runstore.NewMemoryCache()
}

// setupRunBackend selects the durable tier of the run store
func setupRunBackend(cfg *config.AppConfig) (secondary.RunBackend, error) {
	if cfg.JudgeConfig.RunBackend == "postgres" {
		db, err := setupDatabase(cfg.PostgresConfig.Url)
		if err != nil {
			return nil, err
		}
		return pgrunbackend.NewRunBackend(db, logger2.Logger), nil
	}
	return runstore.NewFileBackend(cfg.JudgeConfig.DataDir)
}

// setupBlobStore selects submission artifact storage
func setupBlobStore(ctx context.Context, cfg *config.AppConfig) (submissionlog.BlobStore, error) {
	if cfg.JudgeConfig.BlobStore == "minio" {
		return miniosubmission.NewBlobStore(ctx, cfg.MinIOConfig, logger2.Logger)
	}
	return submissionlog.NewFSBlobStore(cfg.JudgeConfig.SubmissionDir)
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(connStr string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
