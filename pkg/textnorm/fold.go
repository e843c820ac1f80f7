// Package textnorm 提供忽略音调符号的文本归一化，用于名称关键词过滤。
// 例如越南语菜名 "Phở bò" 归一化后为 "pho bo"，可与无音调输入匹配。
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold 将文本小写化并剥离 Unicode 组合音调符号（Mn 类别）。
// 归一化失败时退化为仅小写（宁可少匹配，不让过滤报错）。
func Fold(s string) string {
	lowered := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return out
}

// ContainsAny 判断归一化后的 name 是否包含 term 中任意一个空白分隔的关键词。
// term 为空时视为匹配。
func ContainsAny(name, term string) bool {
	keywords := strings.Fields(Fold(term))
	if len(keywords) == 0 {
		return true
	}
	folded := Fold(name)
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
