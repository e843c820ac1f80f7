package core

import "strings"

// KeywordBag 是从用户搜索历史提取的关键词词袋：词 -> 出现次数。
// 只存在于一次请求内，消费一次用于构造全文检索表达式。
//
// 词序按首次出现顺序保留，保证 Terms() 输出确定、可测试。
type KeywordBag struct {
	freq  map[string]int
	order []string
}

func NewKeywordBag() *KeywordBag {
	return &KeywordBag{freq: make(map[string]int)}
}

// AddQuery 拆分一条搜索串并计入词袋：小写化、按空白切分、丢弃空 token。
func (b *KeywordBag) AddQuery(query string) {
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if _, ok := b.freq[word]; !ok {
			b.order = append(b.order, word)
		}
		b.freq[word]++
	}
}

// Count 返回某个词的出现次数。
func (b *KeywordBag) Count(word string) int {
	return b.freq[word]
}

// Len 返回去重后的词数。
func (b *KeywordBag) Len() int {
	return len(b.freq)
}

// Terms 按首次出现顺序以单个空格拼接去重词，作为全文检索表达式。
// 空词袋返回空串，下游跳过全文检索（所有菜品 relevance = 0）。
func (b *KeywordBag) Terms() string {
	return strings.Join(b.order, " ")
}
