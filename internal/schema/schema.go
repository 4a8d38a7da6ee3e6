package schema

import (
	"fmt"

	"github.com/supportbot/nlu-go/internal/nlu"
)

// IntentSchema 意图定义，供下游报表 Agent 校验 parsed_json
type IntentSchema struct {
	Name        nlu.Intent      `json:"name"`        // 意图名称
	Description string          `json:"description"` // 意图描述
	Priority    int             `json:"priority"`    // 判定顺序，越小越先判定
	Parameters  ParameterSchema `json:"parameters"`  // 参数定义
}

// ParameterSchema JSON Schema 格式的参数定义
type ParameterSchema struct {
	Type       string              `json:"type"`       // "object"
	Properties map[string]Property `json:"properties"` // 参数属性
	Required   []string            `json:"required"`   // 必需参数
}

// Property 参数属性
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
}

// Params 把识别结果展开为参数表（只包含非空字段）
func Params(r nlu.Result) map[string]string {
	params := make(map[string]string, 1)
	add := func(k, v string) {
		if v != "" {
			params[k] = v
		}
	}
	add("asset", r.Asset)
	add("period", r.Period)
	add("item_name", r.ItemName)
	add("text", r.Text)
	return params
}

// Check 校验识别结果是否符合该意图的参数定义
func (s *IntentSchema) Check(r nlu.Result) error {
	if r.Intent != s.Name {
		return fmt.Errorf("意图不匹配: %s != %s", r.Intent, s.Name)
	}

	params := Params(r)
	for _, name := range s.Parameters.Required {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("%s 缺少参数 %s", s.Name, name)
		}
	}

	for name, value := range params {
		prop, ok := s.Parameters.Properties[name]
		if !ok {
			return fmt.Errorf("%s 不支持参数 %s", s.Name, name)
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, value) {
			return fmt.Errorf("%s 参数 %s 取值无效: %s", s.Name, name, value)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
