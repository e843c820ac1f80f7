package filter

import (
	"context"

	"github.com/rushteam/dishrec/core"
)

// CategoryFilter 按请求携带的类目 ID 列表做精确匹配过滤。
// 请求未携带类目时全部保留。
type CategoryFilter struct{}

func (f *CategoryFilter) Name() string { return "filter.category" }

func (f *CategoryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	dish *core.Dish,
) (bool, error) {
	if rctx == nil || len(rctx.CategoryIDs) == 0 {
		return false, nil
	}
	for _, id := range rctx.CategoryIDs {
		if dish.CategoryID == id {
			return false, nil
		}
	}
	return true, nil
}
