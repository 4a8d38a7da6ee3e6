package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath 默认配置文件路径，可通过 NLU_CONFIG 环境变量覆盖
const DefaultPath = "configs/nlu-server.yaml"

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	NLU       NLUConfig       `yaml:"nlu"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `yaml:"port"`
	Name string `yaml:"name"`
	Mode string `yaml:"mode"` // debug, release, test
}

// RedisConfig Redis 配置（用于识别结果缓存）
type RedisConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

// NLUConfig 意图识别配置
type NLUConfig struct {
	KeywordsFile string `yaml:"keywordsFile"` // 为空时使用内置关键词表
}

// WebSocketConfig WebSocket 会话配置
type WebSocketConfig struct {
	HeartbeatSeconds int      `yaml:"heartbeatSeconds"`
	MaxMissedBeats   int      `yaml:"maxMissedBeats"`
	AllowedOrigins   []string `yaml:"allowedOrigins"` // 为空时不校验 Origin
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// LoadConfig 加载配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// PathFromEnv 返回配置文件路径
func PathFromEnv() string {
	if p := os.Getenv("NLU_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Name == "" {
		cfg.Server.Name = "nlu-server"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.TTLSeconds == 0 {
		cfg.Redis.TTLSeconds = 3600
	}
	if cfg.WebSocket.HeartbeatSeconds == 0 {
		cfg.WebSocket.HeartbeatSeconds = 30
	}
	if cfg.WebSocket.MaxMissedBeats == 0 {
		cfg.WebSocket.MaxMissedBeats = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}
