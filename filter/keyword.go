package filter

import (
	"context"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pkg/textnorm"
)

// KeywordFilter 按请求的 search_term 对菜名做忽略音调符号的子串匹配。
// search_term 按空白拆成多个关键词，命中任意一个即保留。
// 例如菜名 "Phở bò" 可被 "pho" 命中。
type KeywordFilter struct{}

func (f *KeywordFilter) Name() string { return "filter.keyword" }

func (f *KeywordFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	dish *core.Dish,
) (bool, error) {
	if rctx == nil || rctx.SearchTerm == "" {
		return false, nil
	}
	return !textnorm.ContainsAny(dish.Name, rctx.SearchTerm), nil
}
