package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Haru0022/oc-staff-app/config"
	"github.com/Haru0022/oc-staff-app/internal/api/handler"
	"github.com/Haru0022/oc-staff-app/internal/api/router"
	"github.com/Haru0022/oc-staff-app/internal/repository"
	"github.com/Haru0022/oc-staff-app/internal/service"
	"github.com/Haru0022/oc-staff-app/pkg/database"
	"github.com/Haru0022/oc-staff-app/pkg/jwt"
	"github.com/Haru0022/oc-staff-app/pkg/logger"
	"github.com/Haru0022/oc-staff-app/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "設定ファイルのパス")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatalf("起動に失敗しました: %v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer zapLogger.Sync() //nolint:errcheck

	// データベース接続とマイグレーション
	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		return err
	}

	// Redis は Token ブラックリストにのみ使用するため、
	// 接続失敗時は機能を無効化して起動を続ける
	redisClient, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("Redis 接続に失敗（Token ブラックリストは無効）", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	jwtManager := jwt.NewManager(&cfg.Auth)

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, jwtManager, redisClient, cfg, zapLogger)
	h := handler.NewHandler(svc, cfg, zapLogger)
	engine := router.New(h, jwtManager, redisClient, cfg, zapLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	// graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("サーバー起動", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zapLogger.Info("シャットダウン開始", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("シャットダウンに失敗: %w", err)
	}

	zapLogger.Info("サーバー停止完了")
	return nil
}
