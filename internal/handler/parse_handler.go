package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/nlu-go/internal/middleware"
	"github.com/supportbot/nlu-go/internal/model"
	"github.com/supportbot/nlu-go/internal/service"
	"go.uber.org/zap"
)

// ParseHandler 意图识别处理器
type ParseHandler struct {
	parserService *service.ParserService
	logger        *zap.Logger
}

// NewParseHandler 创建意图识别处理器
func NewParseHandler(parserService *service.ParserService, logger *zap.Logger) *ParseHandler {
	return &ParseHandler{
		parserService: parserService,
		logger:        logger,
	}
}

// Parse 意图识别接口
func (h *ParseHandler) Parse(c *gin.Context) {
	var req model.ParseRequest
	// 空请求体等同于没有 message
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	if req.Message == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: model.NoMessageError})
		return
	}

	result, err := h.parserService.Parse(c.Request.Context(), req.Message, "http")
	if err != nil {
		h.logger.Error("意图识别失败",
			zap.String("requestId", c.GetString(middleware.RequestIDKey)),
			zap.String("message", req.Message),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.ParseResponse{OK: true, ParsedJSON: result})
}
