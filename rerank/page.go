// Package rerank 提供排序结果上的重排/截断节点。
package rerank

import (
	"context"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
)

// DefaultPageLimit 默认每页条数。
const DefaultPageLimit = 20

// PageNode 是分页截断节点：按 rctx 的 page/limit 截取
// [(page-1)*limit, page*limit) 区间，并把过滤后的总数写回
// Scorecard.Total 供响应层计算 totalPages。
//
// 越界页返回空切片而不是错误。
type PageNode struct{}

func (n *PageNode) Name() string {
	return "rerank.page"
}

func (n *PageNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *PageNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	page, limit := 1, DefaultPageLimit
	if rctx != nil {
		if rctx.Page > 0 {
			page = rctx.Page
		}
		if rctx.Limit > 0 {
			limit = rctx.Limit
		}
		if rctx.Scorecard != nil {
			rctx.Scorecard.Total = len(dishes)
		}
	}

	start := (page - 1) * limit
	if start >= len(dishes) {
		return []*core.Dish{}, nil
	}
	end := start + limit
	if end > len(dishes) {
		end = len(dishes)
	}
	return dishes[start:end], nil
}
