package core

import (
	"time"

	"github.com/rushteam/dishrec/pkg/utils"
)

// RecommendContext 承载一次推荐请求的用户/过滤/分页信息，贯穿整个 Pipeline 透传。
// 所有字段均为请求级，跨请求不共享。
type RecommendContext struct {
	UserID string

	// 过滤与分页参数（来自 HTTP 层，已解析）
	CategoryIDs []string // 类目精确匹配过滤
	SearchTerm  string   // 名称关键词过滤（忽略音调符号）
	Page        int
	Limit       int

	// Now 为请求时刻，新鲜度衰减以此为基准；零值时各 Node 取 time.Now()。
	Now time.Time

	// Scorecard 保存打分链路的中间状态
	Scorecard *Scorecard

	// Labels 是用户级标签，可驱动 Pipeline 行为（新用户、价格敏感等）
	Labels map[string]utils.Label

	// Params 请求级扩展参数
	Params map[string]any
}

// At 返回打分基准时刻。
func (rctx *RecommendContext) At() time.Time {
	if rctx.Now.IsZero() {
		return time.Now()
	}
	return rctx.Now
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// Scorecard 是一次请求内打分链路的中间状态累加器。
// 各 Node 只写自己负责的维度，合并（PriorityNode）时统一读取。
type Scorecard struct {
	// Events 用户的全部非 SEARCH 行为事件（Loader 写入）
	Events []*BehaviorEvent

	// Keywords 搜索关键词词袋（Loader 写入）
	Keywords *KeywordBag

	// Behavior dishID -> 行为分（BehaviorNode 写入，SpreadNode 追加扩散加成）
	Behavior map[string]float64

	// Actions dishID -> 触达过的动作类型，去重、按首次出现顺序
	// 扩散时据此选取“最强动作”
	Actions map[string][]ActionType

	// Recency dishID -> 新鲜度分（RecencyNode 写入，取最大不取和）
	Recency map[string]float64

	// Total 过滤后、分页前的总数（PageNode 写入，响应层读取）
	Total int
}

func NewScorecard() *Scorecard {
	return &Scorecard{
		Keywords: NewKeywordBag(),
		Behavior: make(map[string]float64),
		Actions:  make(map[string][]ActionType),
		Recency:  make(map[string]float64),
	}
}

// RecordAction 记录菜品触达过的动作类型，重复动作不追加。
func (sc *Scorecard) RecordAction(dishID string, action ActionType) {
	for _, a := range sc.Actions[dishID] {
		if a == action {
			return
		}
	}
	sc.Actions[dishID] = append(sc.Actions[dishID], action)
}
