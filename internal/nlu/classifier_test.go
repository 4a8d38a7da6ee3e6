package nlu

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t testing.TB) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultTables())
	require.NoError(t, err)
	return c
}

func TestClassifier_Classify(t *testing.T) {
	c := newTestClassifier(t)
	defaults := DefaultTables()

	tests := []struct {
		name     string
		message  string
		expected Result
	}{
		// 市场行情
		{
			name:     "dollar price",
			message:  "قیمت دلار چنده",
			expected: Result{Intent: IntentMarketPrice, Asset: AssetDollar},
		},
		{
			name:     "coin resolves to gold",
			message:  "قیمت سکه چنده",
			expected: Result{Intent: IntentMarketPrice, Asset: AssetGold},
		},
		{
			name:     "euro resolves to dollar",
			message:  "نرخ یورو امروز",
			expected: Result{Intent: IntentMarketPrice, Asset: AssetDollar},
		},
		{
			name:     "arabic kaf in coin",
			message:  "قیمت س\u0643ه",
			expected: Result{Intent: IntentMarketPrice, Asset: AssetGold},
		},
		{
			name:     "market wins over report",
			message:  "گزارش فروش طلا",
			expected: Result{Intent: IntentMarketPrice, Asset: AssetGold},
		},

		// 销售报表
		{
			name:     "report defaults to monthly",
			message:  "گزارش فروش",
			expected: Result{Intent: IntentSalesReport, Period: PeriodMonthly},
		},
		{
			name:     "report today",
			message:  "گزارش فروش امروز",
			expected: Result{Intent: IntentSalesReport, Period: PeriodDaily},
		},
		{
			name:     "report weekly",
			message:  "گزارش سود هفتگی",
			expected: Result{Intent: IntentSalesReport, Period: PeriodWeekly},
		},
		{
			name:     "report yearly",
			message:  "آمار فروش امسال",
			expected: Result{Intent: IntentSalesReport, Period: PeriodYearly},
		},
		{
			name:     "daily checked before weekly",
			message:  "گزارش فروش امروز و این هفته",
			expected: Result{Intent: IntentSalesReport, Period: PeriodDaily},
		},
		{
			name:     "report wins over price",
			message:  "گزارش قیمت فروش",
			expected: Result{Intent: IntentSalesReport, Period: PeriodMonthly},
		},
		{
			name:     "zwnj inside report word",
			message:  "گزارش\u200cهای فروش",
			expected: Result{Intent: IntentSalesReport, Period: PeriodMonthly},
		},

		// 商品价格
		{
			name:     "price with stop words",
			message:  "لطفا قیمت سیب چنده",
			expected: Result{Intent: IntentPrice, ItemName: "سیب"},
		},
		{
			name:     "price with question mark",
			message:  "قیمت سیب چنده؟",
			expected: Result{Intent: IntentPrice, ItemName: "سیب"},
		},
		{
			name:     "price arabic yeh",
			message:  "ق\u064aمت س\u064aب چنده",
			expected: Result{Intent: IntentPrice, ItemName: "سیب"},
		},
		{
			name:     "price multi word item",
			message:  "قیمت شیر کم چرب چقدره",
			expected: Result{Intent: IntentPrice, ItemName: "شیر کم چرب"},
		},
		{
			name:     "price latin item lowercased",
			message:  "قیمت iPhone چنده",
			expected: Result{Intent: IntentPrice, ItemName: "iphone"},
		},
		{
			name:     "price keyword only",
			message:  "قیمت",
			expected: Result{Intent: IntentPrice, ItemName: "نامشخص"},
		},

		// 库存
		{
			name:     "inventory",
			message:  "موجودی سیب",
			expected: Result{Intent: IntentInventory, ItemName: "سیب"},
		},
		{
			name:     "inventory how many",
			message:  "چند تا سیب داریم؟",
			expected: Result{Intent: IntentInventory, ItemName: "سیب"},
		},
		{
			name:     "inventory keyword only",
			message:  "موجودی",
			expected: Result{Intent: IntentInventory, ItemName: "نامشخص"},
		},

		// 闲聊
		{
			name:     "greeting",
			message:  "سلام خوبی؟",
			expected: Result{Intent: IntentChat, Text: defaults.Chat[0].Reply},
		},
		{
			name:     "farewell",
			message:  "خداحافظ",
			expected: Result{Intent: IntentChat, Text: defaults.Chat[2].Reply},
		},
		{
			name:     "table order wins",
			message:  "مرسی، سلام",
			expected: Result{Intent: IntentChat, Text: defaults.Chat[0].Reply},
		},

		// 兜底
		{
			name:     "unknown text",
			message:  "xyz abc",
			expected: Result{Intent: IntentChat, Text: defaults.Fallback},
		},
		{
			name:     "empty",
			message:  "",
			expected: Result{Intent: IntentChat, Text: defaults.Fallback},
		},
		{
			name:     "whitespace only",
			message:  "  \u200c  ",
			expected: Result{Intent: IntentChat, Text: defaults.Fallback},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.message))
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	c := newTestClassifier(t)
	messages := []string{"قیمت سیب چنده", "گزارش فروش امروز", "سلام", "xyz", ""}

	for _, m := range messages {
		assert.Equal(t, c.Classify(m), c.Classify(m), "message %q", m)
	}
}

func TestClassifier_Total(t *testing.T) {
	c := newTestClassifier(t)
	inputs := []string{
		"",
		"   ",
		"\xff\xfe",
		strings.Repeat("قیمت سیب ", 5000),
		strings.Repeat("a", 100000),
		"((( [[[ \\ $ ^",
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() { c.Classify(in) })
	}

	long := c.Classify(strings.Repeat("قیمت سیب ", 5000))
	assert.Equal(t, IntentPrice, long.Intent)
}

func TestClassifier_ConcurrentUse(t *testing.T) {
	c := newTestClassifier(t)
	want := c.Classify("لطفا قیمت سیب چنده")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, c.Classify("لطفا قیمت سیب چنده"))
			}
		}()
	}
	wg.Wait()
}

func TestClassifier_OnlyOneVariant(t *testing.T) {
	c := newTestClassifier(t)
	messages := []string{"قیمت طلا", "گزارش فروش", "قیمت سیب", "موجودی سیب", "سلام", "???"}

	for _, m := range messages {
		r := c.Classify(m)
		set := 0
		for _, field := range []string{r.Asset, r.Period, r.ItemName, r.Text} {
			if field != "" {
				set++
			}
		}
		assert.Equal(t, 1, set, "message %q produced %+v", m, r)
	}
}

func TestNewClassifier_NilUsesDefaults(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)
	assert.Equal(t, IntentPrice, c.Classify("قیمت سیب").Intent)
}

func TestNewClassifier_InvalidTables(t *testing.T) {
	tables := DefaultTables()
	tables.Price = nil

	_, err := NewClassifier(tables)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestClassifier_NormalizesKeywords(t *testing.T) {
	tables := DefaultTables()
	tables.Price = []string{"ق\u064aمت"}

	c, err := NewClassifier(tables)
	require.NoError(t, err)

	assert.Equal(t, Result{Intent: IntentPrice, ItemName: "موز"}, c.Classify("قیمت موز"))
	assert.Equal(t, []string{"قیمت"}, c.Tables().Price)
}
