package nlu

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyTable       = errors.New("关键词表不能为空")
	ErrDuplicateTrigger = errors.New("闲聊触发词重复")
	ErrEmptyReply       = errors.New("回复内容不能为空")
)

// ChatRule 闲聊触发词与固定回复
type ChatRule struct {
	Trigger string `yaml:"trigger" json:"trigger"`
	Reply   string `yaml:"reply" json:"reply"`
}

// Tables 关键词表。只是数据：类别的判定顺序写在 Classifier 里，不在这里
type Tables struct {
	Market    []string   `yaml:"market" json:"market"`
	Dollar    []string   `yaml:"dollar" json:"dollar"` // 命中则资产为美元，其余市场词归为黄金
	Report    []string   `yaml:"report" json:"report"`
	Daily     []string   `yaml:"daily" json:"daily"`
	Weekly    []string   `yaml:"weekly" json:"weekly"`
	Yearly    []string   `yaml:"yearly" json:"yearly"`
	Price     []string   `yaml:"price" json:"price"`
	Inventory []string   `yaml:"inventory" json:"inventory"`
	StopWords []string   `yaml:"stopWords" json:"stopWords"`
	Chat      []ChatRule `yaml:"chat" json:"chat"`
	Fallback  string     `yaml:"fallback" json:"fallback"`
	Unknown   string     `yaml:"unknown" json:"unknown"`
}

// DefaultTables 返回内置的波斯语关键词表（每次返回新副本）
func DefaultTables() *Tables {
	return &Tables{
		Market: []string{"طلا", "سکه", "دلار", "یورو", "ارز"},
		Dollar: []string{"دلار", "یورو", "ارز"},
		Report: []string{"گزارش", "فروش", "سود", "آمار"},
		Daily:  []string{"امروز", "روزانه"},
		Weekly: []string{"هفته", "هفتگی"},
		Yearly: []string{"سالانه", "امسال", "سال"},
		Price:  []string{"قیمت", "نرخ", "چقدره", "چقدر", "چنده"},
		Inventory: []string{
			"موجودی", "انبار", "تعداد", "چند تا", "چندتا", "چند عدد",
		},
		StopWords: []string{
			"لطفا", "لطفاً", "بگو", "بگید", "بهم", "به من", "برام", "برای من",
			"رو", "را", "اون", "آن", "چیه", "است", "هست", "داریم",
		},
		Chat: []ChatRule{
			{Trigger: "سلام", Reply: "سلام! من یک دستیار تحلیل هستم. لطفا سوال خود را در مورد کالاها یا گزارش ها بپرسید."},
			{Trigger: "چطوری", Reply: "ممنون، خوبم! من یک دستیار تحلیل هستم. لطفا سوال خود را در مورد کالاها یا گزارش ها بپرسید."},
			{Trigger: "خداحافظ", Reply: "خداحافظ! هر وقت سوالی داشتید در خدمتم."},
			{Trigger: "ممنون", Reply: "خواهش می کنم! سوال دیگری دارید؟"},
			{Trigger: "مرسی", Reply: "خواهش می کنم! سوال دیگری دارید؟"},
			{Trigger: "متشکرم", Reply: "خواهش می کنم! سوال دیگری دارید؟"},
		},
		Fallback: "متاسفانه متوجه نشدم. لطفا سوال خود را واضح تر بپرسید.",
		Unknown:  "نامشخص",
	}
}

// LoadTables 从 YAML 文件加载关键词表，文件中非空的部分覆盖默认值
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取关键词文件失败: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("解析关键词文件失败: %w", err)
	}

	tables := DefaultTables()
	tables.merge(&override)

	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("关键词文件无效: %w", err)
	}
	return tables, nil
}

// merge 用 other 中非空的字段覆盖当前表
func (t *Tables) merge(other *Tables) {
	overlay := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = append([]string(nil), src...)
		}
	}

	overlay(&t.Market, other.Market)
	overlay(&t.Dollar, other.Dollar)
	overlay(&t.Report, other.Report)
	overlay(&t.Daily, other.Daily)
	overlay(&t.Weekly, other.Weekly)
	overlay(&t.Yearly, other.Yearly)
	overlay(&t.Price, other.Price)
	overlay(&t.Inventory, other.Inventory)
	overlay(&t.StopWords, other.StopWords)

	if len(other.Chat) > 0 {
		t.Chat = append([]ChatRule(nil), other.Chat...)
	}
	if other.Fallback != "" {
		t.Fallback = other.Fallback
	}
	if other.Unknown != "" {
		t.Unknown = other.Unknown
	}
}

// Validate 校验关键词表
func (t *Tables) Validate() error {
	required := []struct {
		name  string
		words []string
	}{
		{"market", t.Market},
		{"dollar", t.Dollar},
		{"report", t.Report},
		{"price", t.Price},
		{"inventory", t.Inventory},
	}
	for _, r := range required {
		if len(r.words) == 0 {
			return fmt.Errorf("%s: %w", r.name, ErrEmptyTable)
		}
	}

	seen := make(map[string]struct{}, len(t.Chat))
	for _, rule := range t.Chat {
		trigger := Normalize(rule.Trigger)
		if trigger == "" {
			return fmt.Errorf("chat: %w", ErrEmptyTable)
		}
		if _, ok := seen[trigger]; ok {
			return fmt.Errorf("%s: %w", rule.Trigger, ErrDuplicateTrigger)
		}
		seen[trigger] = struct{}{}
		if rule.Reply == "" {
			return fmt.Errorf("%s: %w", rule.Trigger, ErrEmptyReply)
		}
	}

	if t.Fallback == "" || t.Unknown == "" {
		return fmt.Errorf("fallback/unknown: %w", ErrEmptyReply)
	}
	return nil
}
