package score

import (
	"context"
	"log"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
)

const (
	// SpreadTopK 每个种子菜品取的相似菜品数
	SpreadTopK = 10

	// SpreadSimilarityFloor 相似度下限，低于此值不扩散
	SpreadSimilarityFloor = 0.001

	// SpreadFactor 扩散系数：bonus = 种子分 * (SpreadFactor * |最强动作权重|) * 相似度
	SpreadFactor = 0.5

	// SpreadFallbackWeight 种子动作集为空时的兜底动作权重
	SpreadFallbackWeight = 0.3
)

// SpreadNode 是协同扩散节点：行为分为正的菜品向文本相似的菜品“投票”，
// 投票力度正比于用户的参与强度（最强动作权重）和文本相似度。
// 这是无预计算 embedding 情况下 item-item 协同过滤的廉价近似。
//
// 各种子的相似查询互相独立且只读目录，并发发起、统一收敛；
// 单个种子查询失败只丢弃该种子的扩散贡献，不中断其他种子。
type SpreadNode struct {
	Catalog core.CatalogStore

	// TopK 相似菜品数，<= 0 时取 SpreadTopK
	TopK int

	// MaxConcurrent 相似查询的最大并发数（0 表示无限制）
	MaxConcurrent int
}

func (n *SpreadNode) Name() string        { return "score.spread" }
func (n *SpreadNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SpreadNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	if n.Catalog == nil || rctx == nil || rctx.Scorecard == nil || len(dishes) == 0 {
		return dishes, nil
	}
	sc := rctx.Scorecard

	byID := make(map[string]*core.Dish, len(dishes))
	for _, d := range dishes {
		byID[d.ID] = d
	}

	// 种子快照：只从扩散前的行为分出发，加成不级联
	type seed struct {
		dish  *core.Dish
		score float64
	}
	seeds := make([]seed, 0, len(sc.Behavior))
	for _, d := range dishes {
		if s := sc.Behavior[d.ID]; s > 0 {
			seeds = append(seeds, seed{dish: d, score: s})
		}
	}
	if len(seeds) == 0 {
		return dishes, nil
	}

	topK := n.TopK
	if topK <= 0 {
		topK = SpreadTopK
	}

	var (
		mu      sync.Mutex
		bonuses = make(map[string]float64)
	)

	eg, gctx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for _, s := range seeds {
		s := s
		eg.Go(func() error {
			similar, err := n.Catalog.SimilarTo(gctx, s.dish, topK)
			if err != nil {
				// 单种子失败不中断其他种子的扩散
				log.Printf("相似菜品查询失败 dish=%s: %v", s.dish.ID, err)
				return nil
			}

			actionWeight := strongestActionWeight(sc.Actions[s.dish.ID])
			factor := SpreadFactor * math.Abs(actionWeight)

			mu.Lock()
			for _, sim := range similar {
				if sim.ID == s.dish.ID || sim.Similarity <= SpreadSimilarityFloor {
					continue
				}
				if _, ok := byID[sim.ID]; !ok {
					continue
				}
				bonuses[sim.ID] += s.score * factor * sim.Similarity
			}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for id, bonus := range bonuses {
		sc.Behavior[id] += bonus // 不存在的条目从 0 开始
	}
	return dishes, nil
}

// strongestActionWeight 返回动作集中权重绝对值最大的动作的权重，
// 并列时保留先出现的；空集兜底为 SpreadFallbackWeight。
func strongestActionWeight(actions []core.ActionType) float64 {
	if len(actions) == 0 {
		return SpreadFallbackWeight
	}
	best := ActionWeights[actions[0]]
	for _, a := range actions[1:] {
		if w := ActionWeights[a]; math.Abs(w) > math.Abs(best) {
			best = w
		}
	}
	return best
}
