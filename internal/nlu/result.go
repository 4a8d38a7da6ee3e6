package nlu

// Intent 意图类型
type Intent string

const (
	IntentMarketPrice Intent = "get_market_price"
	IntentSalesReport Intent = "sales_report"
	IntentPrice       Intent = "get_price"
	IntentInventory   Intent = "get_inventory"
	IntentChat        Intent = "chat"
)

// 报表周期
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// 市场行情资产（与下游报表 Agent 约定使用波斯语取值）
const (
	AssetGold   = "طلا"
	AssetDollar = "دلار"
)

// Result 意图识别结果，每种意图只携带自己的参数字段
type Result struct {
	Intent   Intent `json:"intent" yaml:"intent"`
	Asset    string `json:"asset,omitempty" yaml:"asset,omitempty"`         // get_market_price
	Period   string `json:"period,omitempty" yaml:"period,omitempty"`       // sales_report
	ItemName string `json:"item_name,omitempty" yaml:"item_name,omitempty"` // get_price, get_inventory
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`           // chat
}

// PriorityOrder 返回意图的判定顺序（chat 同时承担兜底）
func PriorityOrder() []Intent {
	return []Intent{
		IntentMarketPrice,
		IntentSalesReport,
		IntentPrice,
		IntentInventory,
		IntentChat,
	}
}
