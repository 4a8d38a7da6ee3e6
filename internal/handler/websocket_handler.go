package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/supportbot/nlu-go/internal/model"
	"github.com/supportbot/nlu-go/internal/service"
	"go.uber.org/zap"
)

// WebSocketHandler WebSocket 处理器
type WebSocketHandler struct {
	sessionService *service.SessionService
	parserService  *service.ParserService
	upgrader       websocket.Upgrader
	logger         *zap.Logger
}

// NewWebSocketHandler 创建 WebSocket 处理器。allowedOrigins 为空时接受任意 Origin
func NewWebSocketHandler(
	sessionService *service.SessionService,
	parserService *service.ParserService,
	allowedOrigins []string,
	logger *zap.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		sessionService: sessionService,
		parserService:  parserService,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// originChecker 按白名单校验 Origin，不带 Origin 的非浏览器客户端直接放行
func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// HandleWebSocket WebSocket 连接入口
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	h.sessionService.Register(sessionID, c.ClientIP(), conn)
	defer h.sessionService.Remove(sessionID)

	// 消息循环
	for {
		var msg model.SocketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error("WebSocket 读取错误",
					zap.String("sessionId", sessionID),
					zap.Error(err))
			}
			break
		}

		h.handleMessage(c, sessionID, &msg)
	}

	h.logger.Info("WebSocket 连接断开", zap.String("sessionId", sessionID))
}

// handleMessage 处理客户端消息
func (h *WebSocketHandler) handleMessage(c *gin.Context, sessionID string, msg *model.SocketMessage) {
	switch msg.Type {
	case model.TypeParse:
		reply := model.SocketReply{
			MessageID: msg.MessageID,
			Type:      model.TypeParseResult,
			Timestamp: time.Now(),
		}

		result, err := h.parserService.Parse(c.Request.Context(), msg.Content, "websocket")
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			reply.Type = model.TypeError
			reply.Error = model.NoMessageError
		case err != nil:
			reply.Type = model.TypeError
			reply.Error = err.Error()
		default:
			reply.OK = true
			reply.ParsedJSON = &result
		}
		h.sessionService.Send(sessionID, reply)

	case model.TypeHeartbeat:
		h.sessionService.UpdateHeartbeat(sessionID)
		h.logger.Debug("收到心跳", zap.String("sessionId", sessionID))

	default:
		h.logger.Warn("未知消息类型",
			zap.String("sessionId", sessionID),
			zap.String("type", msg.Type))
		h.sessionService.Send(sessionID, model.SocketReply{
			MessageID: msg.MessageID,
			Type:      model.TypeError,
			Error:     "unknown message type: " + msg.Type,
			Timestamp: time.Now(),
		})
	}
}
