package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/supportbot/nlu-go/internal/cache"
	"github.com/supportbot/nlu-go/internal/metrics"
	"github.com/supportbot/nlu-go/internal/nlu"
	"github.com/supportbot/nlu-go/internal/schema"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("消息不能为空")
)

// ParserService 意图识别服务
type ParserService struct {
	classifier  *nlu.Classifier
	catalog     *schema.Registry
	resultCache cache.ResultCache // 可为 nil
	logger      *zap.Logger
}

// NewParserService 创建意图识别服务
func NewParserService(
	classifier *nlu.Classifier,
	catalog *schema.Registry,
	resultCache cache.ResultCache,
	logger *zap.Logger,
) *ParserService {
	return &ParserService{
		classifier:  classifier,
		catalog:     catalog,
		resultCache: resultCache,
		logger:      logger,
	}
}

// Parse 识别消息意图。transport 仅用于指标标签（http、websocket、cli）
func (s *ParserService) Parse(ctx context.Context, message, transport string) (nlu.Result, error) {
	if message == "" {
		metrics.ParseErrors.WithLabelValues("empty_message").Inc()
		return nlu.Result{}, ErrEmptyMessage
	}

	start := time.Now()
	normalized := nlu.Normalize(message)

	if result, ok := s.lookup(ctx, normalized); ok {
		s.observe(result, transport, start)
		return result, nil
	}

	result := s.classifier.Classify(message)

	if err := s.catalog.Validate(result); err != nil {
		metrics.ParseErrors.WithLabelValues("invalid_result").Inc()
		s.logger.Error("识别结果不符合意图定义",
			zap.String("message", message),
			zap.Any("result", result),
			zap.Error(err))
		return nlu.Result{}, fmt.Errorf("识别结果无效: %w", err)
	}

	s.store(ctx, normalized, result)
	s.observe(result, transport, start)
	return result, nil
}

// lookup 读缓存，缓存故障只记录日志
func (s *ParserService) lookup(ctx context.Context, normalized string) (nlu.Result, bool) {
	if s.resultCache == nil {
		return nlu.Result{}, false
	}

	result, ok, err := s.resultCache.Get(ctx, normalized)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("读取识别缓存失败", zap.Error(err))
		return nlu.Result{}, false
	case !ok:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nlu.Result{}, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return result, true
}

func (s *ParserService) store(ctx context.Context, normalized string, result nlu.Result) {
	if s.resultCache == nil {
		return
	}
	if err := s.resultCache.Set(ctx, normalized, result); err != nil {
		s.logger.Warn("写入识别缓存失败", zap.Error(err))
	}
}

func (s *ParserService) observe(result nlu.Result, transport string, start time.Time) {
	metrics.ParseRequests.WithLabelValues(string(result.Intent), transport).Inc()
	metrics.ParseDuration.WithLabelValues(transport).Observe(time.Since(start).Seconds())

	s.logger.Debug("意图识别完成",
		zap.String("transport", transport),
		zap.String("intent", string(result.Intent)),
		zap.Duration("elapsed", time.Since(start)))
}
