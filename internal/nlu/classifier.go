package nlu

import (
	"fmt"
	"strings"
	"unicode"
)

// rule 决策表中的一条规则：命中即返回，不再检查后续规则
type rule struct {
	intent Intent
	apply  func(text string) (Result, bool)
}

// Classifier 基于关键词表的意图识别器，构造后只读，可并发使用
type Classifier struct {
	tables            *Tables
	priceStripper     *Stripper
	inventoryStripper *Stripper
	rules             []rule
}

// NewClassifier 创建意图识别器
func NewClassifier(tables *Tables) (*Classifier, error) {
	if tables == nil {
		tables = DefaultTables()
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("关键词表校验失败: %w", err)
	}

	t := normalizeTables(tables)

	priceStripper, err := NewStripper(concat(t.Price, t.StopWords))
	if err != nil {
		return nil, fmt.Errorf("价格关键词: %w", err)
	}
	inventoryStripper, err := NewStripper(concat(t.Inventory, t.StopWords))
	if err != nil {
		return nil, fmt.Errorf("库存关键词: %w", err)
	}

	c := &Classifier{
		tables:            t,
		priceStripper:     priceStripper,
		inventoryStripper: inventoryStripper,
	}

	// 顺序即优先级：市场行情 > 销售报表 > 商品价格 > 库存 > 闲聊
	c.rules = []rule{
		{IntentMarketPrice, c.marketPrice},
		{IntentSalesReport, c.salesReport},
		{IntentPrice, c.itemPrice},
		{IntentInventory, c.inventory},
		{IntentChat, c.chat},
	}

	return c, nil
}

// Classify 识别消息意图并提取参数，对任何输入都返回结果
func (c *Classifier) Classify(message string) Result {
	text := Normalize(message)

	for _, r := range c.rules {
		if result, ok := r.apply(text); ok {
			return result
		}
	}

	return Result{Intent: IntentChat, Text: c.tables.Fallback}
}

// Tables 返回识别器使用的关键词表副本（已标准化）
func (c *Classifier) Tables() *Tables {
	return normalizeTables(c.tables)
}

func (c *Classifier) marketPrice(text string) (Result, bool) {
	if !containsAny(text, c.tables.Market) {
		return Result{}, false
	}

	asset := AssetGold
	if containsAny(text, c.tables.Dollar) {
		asset = AssetDollar
	}
	return Result{Intent: IntentMarketPrice, Asset: asset}, true
}

func (c *Classifier) salesReport(text string) (Result, bool) {
	if !containsAny(text, c.tables.Report) {
		return Result{}, false
	}

	period := PeriodMonthly
	switch {
	case containsAny(text, c.tables.Daily):
		period = PeriodDaily
	case containsAny(text, c.tables.Weekly):
		period = PeriodWeekly
	case containsAny(text, c.tables.Yearly):
		period = PeriodYearly
	}
	return Result{Intent: IntentSalesReport, Period: period}, true
}

func (c *Classifier) itemPrice(text string) (Result, bool) {
	if !containsAny(text, c.tables.Price) {
		return Result{}, false
	}
	return Result{Intent: IntentPrice, ItemName: c.itemName(c.priceStripper, text)}, true
}

func (c *Classifier) inventory(text string) (Result, bool) {
	if !containsAny(text, c.tables.Inventory) {
		return Result{}, false
	}
	return Result{Intent: IntentInventory, ItemName: c.itemName(c.inventoryStripper, text)}, true
}

func (c *Classifier) chat(text string) (Result, bool) {
	for _, cr := range c.tables.Chat {
		if strings.Contains(text, cr.Trigger) {
			return Result{Intent: IntentChat, Text: cr.Reply}, true
		}
	}
	return Result{}, false
}

// itemName 删除关键词后剩下的就是商品名，去掉首尾标点（如 ؟）
func (c *Classifier) itemName(s *Stripper, text string) string {
	name := strings.TrimFunc(s.Strip(text), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	if name == "" {
		return c.tables.Unknown
	}
	return name
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func concat(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// normalizeTables 关键词与输入走同一套标准化，YAML 里写阿拉伯字形也能匹配
func normalizeTables(t *Tables) *Tables {
	words := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, w := range in {
			if w = Normalize(w); w != "" {
				out = append(out, w)
			}
		}
		return out
	}

	chat := make([]ChatRule, len(t.Chat))
	for i, rule := range t.Chat {
		chat[i] = ChatRule{Trigger: Normalize(rule.Trigger), Reply: rule.Reply}
	}

	return &Tables{
		Market:    words(t.Market),
		Dollar:    words(t.Dollar),
		Report:    words(t.Report),
		Daily:     words(t.Daily),
		Weekly:    words(t.Weekly),
		Yearly:    words(t.Yearly),
		Price:     words(t.Price),
		Inventory: words(t.Inventory),
		StopWords: words(t.StopWords),
		Chat:      chat,
		Fallback:  t.Fallback,
		Unknown:   t.Unknown,
	}
}
