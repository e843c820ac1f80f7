package pipeline

import (
	"context"

	"github.com/rushteam/dishrec/core"
)

// Pipeline 是 dishrec 的核心抽象：把打分逻辑拆成可组合的 Node 链。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	cur := dishes
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
