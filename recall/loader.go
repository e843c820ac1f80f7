package recall

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
	"github.com/rushteam/dishrec/pkg/utils"
)

// DefaultSearchLimit 构建关键词词袋时回看的最近搜索条数。
const DefaultSearchLimit = 50

// Loader 是整条打分链路的数据入口：并发拉取行为日志与菜品目录。
//
// 两路读取无数据依赖，并发执行：
//   - 行为路：用户全部非 SEARCH 事件，写入 Scorecard.Events
//   - 目录路：最近搜索 -> 关键词词袋 -> 附带全文相关度的全量目录
//
// 任一路失败对整个请求致命：没有目录无从推荐，没有行为历史则
// 无法与冷启动用户区分，静默降级会掩盖故障。
type Loader struct {
	Behavior core.BehaviorStore
	Catalog  core.CatalogStore

	// SearchLimit 回看的搜索条数，<= 0 时取 DefaultSearchLimit
	SearchLimit int
}

func (n *Loader) Name() string        { return "recall.loader" }
func (n *Loader) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Loader) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Dish,
) ([]*core.Dish, error) {
	if n.Behavior == nil || n.Catalog == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}
	if rctx.Scorecard == nil {
		rctx.Scorecard = core.NewScorecard()
	}
	sc := rctx.Scorecard

	searchLimit := n.SearchLimit
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}

	var dishes []*core.Dish
	eg, gctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		events, err := n.Behavior.FindByUser(gctx, rctx.UserID, core.BehaviorActionTypes)
		if err != nil {
			return err
		}
		sc.Events = events
		return nil
	})

	eg.Go(func() error {
		searches, err := n.Behavior.RecentSearches(gctx, rctx.UserID, searchLimit)
		if err != nil {
			return err
		}
		for _, s := range searches {
			if s.SearchQuery == "" {
				// 脏数据：缺失查询串的 SEARCH 事件跳过，不中断请求
				continue
			}
			sc.Keywords.AddQuery(s.SearchQuery)
		}

		all, err := n.Catalog.AllWithRelevance(gctx, sc.Keywords.Terms())
		if err != nil {
			return err
		}
		dishes = all
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, d := range dishes {
		d.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
	}
	return dishes, nil
}
