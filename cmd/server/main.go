package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/database"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"github.com/Hariprajaa05/Farmer-project/internal/router"
	"github.com/Hariprajaa05/Farmer-project/internal/scheduler"
	"github.com/Hariprajaa05/Farmer-project/internal/tracing"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 加载配置
	cfg := config.Load(*configPath)

	// 初始化日志
	if err := logger.Init(cfg.Log); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化链路追踪
	shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		logger.Fatal("Failed to initialize tracing: %v", err)
	}

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	store := repository.New(db)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(store, cfg)

	// 启动定时任务
	ledgerLogic := logic.NewLedgerLogic(store, logic.LedgerOptionsFromConfig(cfg.Ledger))
	tasks := scheduler.Start(ledgerLogic, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}
	tasks.Stop()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("Failed to shutdown tracing: %v", err)
	}
	database.Close(db)

	logger.Info("Server exited")
}
