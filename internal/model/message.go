package model

import (
	"time"

	"github.com/supportbot/nlu-go/internal/nlu"
)

// WebSocket 消息类型
const (
	TypeParse       = "PARSE"
	TypeHeartbeat   = "HEARTBEAT"
	TypeParseResult = "PARSE_RESULT"
	TypeError       = "ERROR"
)

// ParseRequest 意图识别请求
type ParseRequest struct {
	Message string `json:"message"`
}

// ParseResponse 意图识别响应
type ParseResponse struct {
	OK         bool       `json:"ok"`
	ParsedJSON nlu.Result `json:"parsed_json"`
}

// NoMessageError 消息为空时各传输方式统一返回的错误文本
const NoMessageError = "No message provided"

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}

// SocketMessage 客户端通过 WebSocket 发送的消息
type SocketMessage struct {
	MessageID string `json:"messageId"`
	Type      string `json:"type"` // PARSE, HEARTBEAT
	Content   string `json:"content"`
}

// SocketReply 服务端通过 WebSocket 返回的消息
type SocketReply struct {
	MessageID  string      `json:"messageId,omitempty"`
	Type       string      `json:"type"` // PARSE_RESULT, ERROR
	OK         bool        `json:"ok"`
	ParsedJSON *nlu.Result `json:"parsed_json,omitempty"`
	Error      string      `json:"error,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}
