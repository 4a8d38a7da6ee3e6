package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/supportbot/nlu-go/internal/metrics"
	"github.com/supportbot/nlu-go/internal/model"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("会话不存在")
)

// SessionService WebSocket 会话管理服务
type SessionService struct {
	sessions          map[string]*model.Session // sessionId -> session
	mu                sync.RWMutex              // 读写锁保护
	heartbeatInterval time.Duration
	maxMissedBeats    int
	logger            *zap.Logger
}

// NewSessionService 创建会话管理服务
func NewSessionService(heartbeatInterval time.Duration, maxMissedBeats int, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:          make(map[string]*model.Session),
		heartbeatInterval: heartbeatInterval,
		maxMissedBeats:    maxMissedBeats,
		logger:            logger,
	}
}

// Register 注册会话
func (s *SessionService) Register(sessionID, clientIP string, conn model.Conn) *model.Session {
	session := model.NewSession(sessionID, clientIP, conn, time.Now())

	s.mu.Lock()
	s.sessions[sessionID] = session
	count := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(count))
	s.logger.Info("会话注册成功",
		zap.String("sessionId", sessionID),
		zap.String("clientIp", clientIP))
	return session
}

// Send 向指定会话发送消息
func (s *SessionService) Send(sessionID string, message interface{}) error {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return ErrSessionNotFound
	}

	if err := session.WriteMessage(message); err != nil {
		s.logger.Error("消息发送失败",
			zap.String("sessionId", sessionID),
			zap.Error(err))
		s.Remove(sessionID)
		return err
	}
	return nil
}

// UpdateHeartbeat 更新心跳时间
func (s *SessionService) UpdateHeartbeat(sessionID string) bool {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	session.UpdateHeartbeat(time.Now())
	return true
}

// Remove 移除会话
func (s *SessionService) Remove(sessionID string) {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	count := len(s.sessions)
	s.mu.Unlock()

	if ok {
		metrics.ActiveSessions.Set(float64(count))
		s.logger.Info("会话已移除", zap.String("sessionId", sessionID))
	}
}

// OnlineCount 获取在线会话数
func (s *SessionService) OnlineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Run 启动心跳检测，ctx 取消时退出
func (s *SessionService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

// sweep 清理连续多次丢失心跳的会话
func (s *SessionService) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionID, session := range s.sessions {
		if now.Sub(session.LastHeartbeat()) <= s.heartbeatInterval {
			continue
		}

		missed := session.IncrementMissedBeats()
		if missed < s.maxMissedBeats {
			s.logger.Warn("会话心跳丢失",
				zap.String("sessionId", sessionID),
				zap.Int("missedBeats", missed))
			continue
		}

		s.logger.Info("清理无效会话",
			zap.String("sessionId", sessionID),
			zap.Int("missedBeats", missed))
		session.Conn.Close()
		delete(s.sessions, sessionID)
	}

	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}
