package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/supportbot/nlu-go/internal/nlu"
	"go.uber.org/zap"
)

// Registry 意图目录
type Registry struct {
	intents map[nlu.Intent]*IntentSchema
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewRegistry 创建意图目录
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		intents: make(map[nlu.Intent]*IntentSchema),
		logger:  logger,
	}
}

// Register 注册意图
func (r *Registry) Register(s *IntentSchema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Name == "" {
		return fmt.Errorf("intent name cannot be empty")
	}

	if _, exists := r.intents[s.Name]; exists {
		return fmt.Errorf("intent already registered: %s", s.Name)
	}

	r.intents[s.Name] = s
	r.logger.Debug("意图已注册", zap.String("name", string(s.Name)))
	return nil
}

// Get 获取意图定义
func (r *Registry) Get(name nlu.Intent) (*IntentSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.intents[name]
	if !ok {
		return nil, fmt.Errorf("intent not found: %s", name)
	}
	return s, nil
}

// List 按判定顺序列出所有意图
func (r *Registry) List() []*IntentSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*IntentSchema, 0, len(r.intents))
	for _, s := range r.intents {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Priority < list[j].Priority
	})
	return list
}

// Validate 校验识别结果
func (r *Registry) Validate(result nlu.Result) error {
	s, err := r.Get(result.Intent)
	if err != nil {
		return err
	}
	return s.Check(result)
}

// Count 获取注册的意图数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.intents)
}
