package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/nlu-go/internal/schema"
	"github.com/supportbot/nlu-go/internal/service"
)

// APIHandler 通用 API 处理器
type APIHandler struct {
	serviceName    string
	sessionService *service.SessionService
	catalog        *schema.Registry
}

// NewAPIHandler 创建 API 处理器
func NewAPIHandler(serviceName string, sessionService *service.SessionService, catalog *schema.Registry) *APIHandler {
	return &APIHandler{
		serviceName:    serviceName,
		sessionService: sessionService,
		catalog:        catalog,
	}
}

// Health 健康检查
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "UP",
		"service":         h.serviceName,
		"online_sessions": h.sessionService.OnlineCount(),
	})
}

// Intents 列出支持的意图及参数定义
func (h *APIHandler) Intents(c *gin.Context) {
	intents := h.catalog.List()
	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
		"count":   len(intents),
	})
}
