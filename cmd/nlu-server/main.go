package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/nlu-go/internal/cache"
	"github.com/supportbot/nlu-go/internal/config"
	"github.com/supportbot/nlu-go/internal/handler"
	"github.com/supportbot/nlu-go/internal/nlu"
	"github.com/supportbot/nlu-go/internal/schema"
	"github.com/supportbot/nlu-go/internal/service"
	"github.com/supportbot/nlu-go/pkg/logger"
	"github.com/supportbot/nlu-go/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("nlu-server 服务启动中...")
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 加载关键词表
	tables := nlu.DefaultTables()
	if cfg.NLU.KeywordsFile != "" {
		tables, err = nlu.LoadTables(cfg.NLU.KeywordsFile)
		if err != nil {
			zapLogger.Fatal("加载关键词表失败",
				zap.String("path", cfg.NLU.KeywordsFile),
				zap.Error(err))
		}
	}

	classifier, err := nlu.NewClassifier(tables)
	if err != nil {
		zapLogger.Fatal("初始化意图识别器失败", zap.Error(err))
	}

	// 注册意图定义
	catalog := schema.NewRegistry(zapLogger)
	if err := schema.RegisterBuiltinIntents(catalog, zapLogger); err != nil {
		zapLogger.Fatal("注册意图定义失败", zap.Error(err))
	}

	// 初始化 Redis 缓存（可选）
	var resultCache cache.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			zapLogger.Fatal("连接 Redis 失败", zap.Error(err))
		}
		defer redisClient.Close()

		version := cache.Fingerprint(classifier.Tables())
		resultCache = cache.NewRedisCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, version)
		zapLogger.Info("识别结果缓存已启用", zap.String("version", version))
	}

	// 初始化服务
	parserService := service.NewParserService(classifier, catalog, resultCache, zapLogger)
	sessionService := service.NewSessionService(
		time.Duration(cfg.WebSocket.HeartbeatSeconds)*time.Second,
		cfg.WebSocket.MaxMissedBeats,
		zapLogger,
	)
	go sessionService.Run(ctx)

	// 初始化路由
	r := handler.SetupRouter(handler.RouterDeps{
		ServiceName:    cfg.Server.Name,
		ParserService:  parserService,
		SessionService: sessionService,
		Catalog:        catalog,
		AllowedOrigins: cfg.WebSocket.AllowedOrigins,
		Logger:         zapLogger,
	})

	// 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("nlu-server 服务启动成功",
		zap.Int("port", cfg.Server.Port),
		zap.Int("intents", catalog.Count()))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("服务启动失败", zap.Error(err))
	}
}
