package model

import (
	"sync"
	"time"
)

// Conn WebSocket 连接中会话用到的部分（*websocket.Conn 满足该接口）
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Session WebSocket 会话
type Session struct {
	SessionID     string
	ClientIP      string
	Conn          Conn
	ConnectedAt   time.Time
	lastHeartbeat time.Time
	missedBeats   int
	mu            sync.RWMutex // 保护心跳字段和写连接
}

// NewSession 创建会话
func NewSession(sessionID, clientIP string, conn Conn, now time.Time) *Session {
	return &Session{
		SessionID:     sessionID,
		ClientIP:      clientIP,
		Conn:          conn,
		ConnectedAt:   now,
		lastHeartbeat: now,
	}
}

// UpdateHeartbeat 更新心跳时间
func (s *Session) UpdateHeartbeat(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHeartbeat = now
	s.missedBeats = 0
}

// LastHeartbeat 最近一次心跳时间
func (s *Session) LastHeartbeat() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastHeartbeat
}

// IncrementMissedBeats 增加丢失心跳次数，返回累计次数
func (s *Session) IncrementMissedBeats() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missedBeats++
	return s.missedBeats
}

// MissedBeats 丢失心跳次数
func (s *Session) MissedBeats() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.missedBeats
}

// WriteMessage 向 WebSocket 写入消息（线程安全）
func (s *Session) WriteMessage(message interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Conn.WriteJSON(message)
}
