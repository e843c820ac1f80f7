package filter

import (
	"context"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
	"github.com/rushteam/dishrec/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该菜品就会被过滤掉。
// 过滤顺序即 Filters 顺序：类目 -> 名称关键词 -> 规则。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	if len(n.Filters) == 0 || len(dishes) == 0 {
		return dishes, nil
	}

	out := make([]*core.Dish, 0, len(dishes))

	for _, dish := range dishes {
		if dish == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, dish)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			dish.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, dish)
	}

	return out, nil
}
