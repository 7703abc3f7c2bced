// CanPai 餐饮排班服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/canpai/canpai/internal/config"
	"github.com/canpai/canpai/internal/database"
	"github.com/canpai/canpai/internal/handler"
	"github.com/canpai/canpai/internal/metrics"
	"github.com/canpai/canpai/internal/middleware"
	"github.com/canpai/canpai/internal/repository"
	"github.com/canpai/canpai/internal/security"
	"github.com/canpai/canpai/pkg/logger"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	format := "json"
	if cfg.IsDevelopment() {
		format = "console"
	}
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: format,
	})

	fmt.Printf("CanPai 餐饮排班服务 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	// 连接数据库
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("数据库初始化失败")
	}
	defer db.Close()

	// 仓储层
	accountRepo := repository.NewAccountRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// 安全管理
	sec := security.NewManager(&cfg.Auth)

	// 处理器
	authHandler := handler.NewAuthHandler(accountRepo, staffRepo, sec)
	storeHandler := handler.NewStoreHandler(storeRepo)
	staffHandler := handler.NewStaffHandler(staffRepo)
	requirementHandler := handler.NewRequirementHandler(requirementRepo)
	requestHandler := handler.NewRequestHandler(requestRepo)
	shiftHandler := handler.NewShiftHandler(shiftRepo)
	statsHandler := handler.NewStatsHandler(requirementRepo, shiftRepo)
	scheduleHandler := handler.NewScheduleHandler(&cfg.Scheduler, staffRepo, requirementRepo, requestRepo, shiftRepo)

	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Health(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded","database":"down"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"canpai"}`))
	})

	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	// 认证
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/v1/auth/me", authHandler.Me)

	// 门店
	mux.HandleFunc("POST /api/v1/stores", storeHandler.Create)
	mux.HandleFunc("GET /api/v1/stores", storeHandler.List)
	mux.HandleFunc("GET /api/v1/stores/{id}", storeHandler.Get)
	mux.HandleFunc("PUT /api/v1/stores/{id}", storeHandler.Update)
	mux.HandleFunc("DELETE /api/v1/stores/{id}", storeHandler.Delete)

	// 员工
	mux.HandleFunc("POST /api/v1/staff", staffHandler.Create)
	mux.HandleFunc("GET /api/v1/staff/{id}", staffHandler.Get)
	mux.HandleFunc("PUT /api/v1/staff/{id}", staffHandler.Update)
	mux.HandleFunc("DELETE /api/v1/staff/{id}", staffHandler.Delete)
	mux.HandleFunc("GET /api/v1/stores/{store_id}/staff", staffHandler.ListByStore)

	// 人员需求
	mux.HandleFunc("POST /api/v1/requirements", requirementHandler.Create)
	mux.HandleFunc("PUT /api/v1/requirements/{id}", requirementHandler.Update)
	mux.HandleFunc("DELETE /api/v1/requirements/{id}", requirementHandler.Delete)
	mux.HandleFunc("GET /api/v1/stores/{store_id}/requirements", requirementHandler.ListByStore)

	// 班次申请
	mux.HandleFunc("POST /api/v1/requests", requestHandler.Submit)
	mux.HandleFunc("PUT /api/v1/requests/{id}/lock", requestHandler.SetLocked)
	mux.HandleFunc("DELETE /api/v1/requests/{id}", requestHandler.Delete)
	mux.HandleFunc("GET /api/v1/stores/{store_id}/requests", requestHandler.ListByStore)

	// 班次
	mux.HandleFunc("GET /api/v1/stores/{store_id}/shifts", shiftHandler.ListByStore)
	mux.HandleFunc("POST /api/v1/stores/{store_id}/shifts/confirm", shiftHandler.Confirm)
	mux.HandleFunc("PUT /api/v1/shifts/{id}", shiftHandler.Update)
	mux.HandleFunc("DELETE /api/v1/shifts/{id}", shiftHandler.Delete)

	// 排班生成与校验
	mux.HandleFunc("POST /api/v1/stores/{store_id}/schedule/generate", scheduleHandler.Generate)
	mux.HandleFunc("GET /api/v1/stores/{store_id}/schedule/validate", scheduleHandler.Validate)
	mux.HandleFunc("GET /api/v1/stores/{store_id}/schedule/cost", scheduleHandler.Cost)

	// 统计分析
	mux.HandleFunc("GET /api/v1/stores/{store_id}/stats/coverage", statsHandler.Coverage)

	// ========================================
	// 监控端点
	// ========================================

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
	}

	// ========================================
	// 中间件
	// ========================================

	authMiddleware := middleware.AuthMiddleware(&middleware.AuthConfig{
		Security: sec,
		SkipPaths: []string{
			"/health",
			"/version",
			"/metrics",
			"/api/v1/auth/login",
		},
	})

	root := middleware.Chain(mux,
		middleware.RecoveryMiddleware,
		middleware.RequestIDMiddleware,
		middleware.SecurityHeadersMiddleware,
		middleware.LoggingMiddleware,
		authMiddleware,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 启动服务器（非阻塞）
	go func() {
		logger.Info().
			Int("port", cfg.App.Port).
			Str("version", Version).
			Str("env", cfg.App.Env).
			Msg("服务器启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("服务器启动失败")
			os.Exit(1)
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
		os.Exit(1)
	}

	logger.Info().Msg("服务器已关闭")
}
