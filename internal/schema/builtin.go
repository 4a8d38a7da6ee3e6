package schema

import (
	"github.com/supportbot/nlu-go/internal/nlu"
	"go.uber.org/zap"
)

// RegisterBuiltinIntents 注册内置意图（顺序与识别器的判定顺序一致）
func RegisterBuiltinIntents(registry *Registry, logger *zap.Logger) error {
	descriptions := map[nlu.Intent]string{
		nlu.IntentMarketPrice: "查询黄金、金币、美元、欧元等市场行情",
		nlu.IntentSalesReport: "查询销售、利润、统计报表",
		nlu.IntentPrice:       "查询某个商品的价格",
		nlu.IntentInventory:   "查询某个商品的库存数量",
		nlu.IntentChat:        "问候、道别、致谢等闲聊，以及无法识别时的兜底回复",
	}

	parameters := map[nlu.Intent]ParameterSchema{
		nlu.IntentMarketPrice: {
			Type: "object",
			Properties: map[string]Property{
				"asset": {
					Type:        "string",
					Description: "资产类型：黄金（含金币）或美元（含欧元、外汇）",
					Enum:        []string{nlu.AssetGold, nlu.AssetDollar},
				},
			},
			Required: []string{"asset"},
		},
		nlu.IntentSalesReport: {
			Type: "object",
			Properties: map[string]Property{
				"period": {
					Type:        "string",
					Description: "报表周期，未指定时为 monthly",
					Enum:        []string{nlu.PeriodDaily, nlu.PeriodWeekly, nlu.PeriodMonthly, nlu.PeriodYearly},
				},
			},
			Required: []string{"period"},
		},
		nlu.IntentPrice: {
			Type: "object",
			Properties: map[string]Property{
				"item_name": {
					Type:        "string",
					Description: "商品名称，无法提取时为占位值",
				},
			},
			Required: []string{"item_name"},
		},
		nlu.IntentInventory: {
			Type: "object",
			Properties: map[string]Property{
				"item_name": {
					Type:        "string",
					Description: "商品名称，无法提取时为占位值",
				},
			},
			Required: []string{"item_name"},
		},
		nlu.IntentChat: {
			Type: "object",
			Properties: map[string]Property{
				"text": {
					Type:        "string",
					Description: "直接回复给用户的文本",
				},
			},
			Required: []string{"text"},
		},
	}

	for i, intent := range nlu.PriorityOrder() {
		s := &IntentSchema{
			Name:        intent,
			Description: descriptions[intent],
			Priority:    i + 1,
			Parameters:  parameters[intent],
		}
		if err := registry.Register(s); err != nil {
			return err
		}
	}

	logger.Info("内置意图注册完成", zap.Int("count", registry.Count()))
	return nil
}
