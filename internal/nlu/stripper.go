package nlu

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// boundary 词边界字符：Go 的 \b 只认 ASCII 单词字符，波斯语字母需要显式定义
const boundary = `[^\p{L}\p{M}\p{N}_]`

// Stripper 从文本中删除整词匹配的关键词
type Stripper struct {
	pattern *regexp.Regexp
}

// NewStripper 根据关键词集合编译删除表达式
func NewStripper(keywords []string) (*Stripper, error) {
	terms := uniqueTerms(keywords)
	if len(terms) == 0 {
		return &Stripper{}, nil
	}

	// 长词优先，避免短语被它的前缀抢先匹配
	sort.SliceStable(terms, func(i, j int) bool {
		return utf8.RuneCountInString(terms[i]) > utf8.RuneCountInString(terms[j])
	})

	alts := make([]string, len(terms))
	for i, term := range terms {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(term), " ", `\s+`)
	}

	expr := `(?i)(^|` + boundary + `)(?:` + strings.Join(alts, "|") + `)(` + boundary + `|$)`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("编译关键词表达式失败: %w", err)
	}

	return &Stripper{pattern: pattern}, nil
}

// Strip 删除所有整词关键词，并把多余空白压缩为单个空格
func (s *Stripper) Strip(text string) string {
	text = collapseSpaces(text)
	if s.pattern == nil {
		return text
	}

	// RE2 没有环视，边界字符被捕获后放回；相邻关键词共享边界时需要再扫一遍。
	// 每次替换都至少删掉一个非空白字符，所以循环一定结束
	for {
		next := s.pattern.ReplaceAllString(text, "${1} ${2}")
		if next == text {
			break
		}
		text = next
	}

	return collapseSpaces(text)
}

// StripKeywords 一次性删除关键词；表达式无法编译时原样返回压缩空白后的文本
func StripKeywords(text string, keywords []string) string {
	s, err := NewStripper(keywords)
	if err != nil {
		return collapseSpaces(text)
	}
	return s.Strip(text)
}

func uniqueTerms(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = collapseSpaces(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		terms = append(terms, kw)
	}
	return terms
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
