package nlu

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 阿拉伯字形统一为波斯字形，零宽非连接符替换为普通空格
var charReplacer = strings.NewReplacer(
	"\u064a", "\u06cc", // ي → ی
	"\u0643", "\u06a9", // ك → ک
	"\u200c", " ",
)

// Normalize 标准化波斯语文本，使关键词匹配不受字形差异影响
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// NFKC 先把阿拉伯表现形式（ﻙ、ﻱ 等）折叠为基本字母；
	// 有些大写字母加组合符只有小写后才有预组合形式，所以小写后再做一次
	text = norm.NFKC.String(strings.ToLower(norm.NFKC.String(text)))
	text = charReplacer.Replace(text)

	return strings.TrimSpace(strings.ToLower(text))
}
