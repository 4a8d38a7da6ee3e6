package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/supportbot/nlu-go/internal/middleware"
	"github.com/supportbot/nlu-go/internal/schema"
	"github.com/supportbot/nlu-go/internal/service"
	"go.uber.org/zap"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	ServiceName    string
	ParserService  *service.ParserService
	SessionService *service.SessionService
	Catalog        *schema.Registry
	AllowedOrigins []string
	Logger         *zap.Logger
}

// SetupRouter 初始化路由
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS())

	parseHandler := NewParseHandler(deps.ParserService, deps.Logger)
	apiHandler := NewAPIHandler(deps.ServiceName, deps.SessionService, deps.Catalog)
	wsHandler := NewWebSocketHandler(deps.SessionService, deps.ParserService, deps.AllowedOrigins, deps.Logger)

	r.POST("/", parseHandler.Parse)
	r.POST("/api/parse", parseHandler.Parse)
	r.GET("/api/intents", apiHandler.Intents)
	r.GET("/api/health", apiHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", wsHandler.HandleWebSocket)

	return r
}
