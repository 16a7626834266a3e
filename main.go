package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ti-tracker/config"
	"ti-tracker/logger"
	"ti-tracker/services"
	"ti-tracker/web"
)

func main() {
	// .env 可选, 不存在时只读环境变量
	if err := godotenv.Load(); err == nil {
		logger.Println("Loaded .env file")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatalf("Failed to init logger: %v", err)
	}

	logger.Printf("Starting TI match dashboard (%s)...", cfg.Environment)

	// 加载数据集 (只读, 启动时一次)
	data, closeSource, err := services.LoadDataset(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("Failed to load dataset: %+v", err)
	}
	defer closeSource()

	detailCache := services.NewQueryCache(cfg.DetailCacheTTL())
	defer detailCache.Close()

	service := services.NewDashboardService(data, detailCache)

	// 创建WebSocket Hub
	wsHub := web.NewHub()
	go wsHub.Run()

	// 启动Web服务器
	server := web.NewServer(cfg, service, wsHub)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Web server error: %v", err)
		}
	}()

	logger.Println("Service is running. Press Ctrl+C to stop.")

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("Shutting down service...")

	wsHub.Stop()
	server.Stop()

	logger.Println("Service stopped")
}
