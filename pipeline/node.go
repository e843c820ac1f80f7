package pipeline

import (
	"context"

	"github.com/rushteam/dishrec/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：加载候选集（目录 + 行为）
	KindRank        Kind = "rank"        // 打分阶段：行为/扩散/新鲜度/融合
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的候选
	KindReRank      Kind = "rerank"      // 重排阶段：截断/分页
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充特征或最终结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 dishes -> 输出 dishes”的形态，方便加载生成、过滤截断、重排等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		dishes []*core.Dish,
	) ([]*core.Dish, error)
}
