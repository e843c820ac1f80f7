// Package service 组装打分 Pipeline 并暴露请求级的推荐入口。
package service

import (
	"context"
	"math"
	"time"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/filter"
	"github.com/rushteam/dishrec/pipeline"
	"github.com/rushteam/dishrec/recall"
	"github.com/rushteam/dishrec/rerank"
	"github.com/rushteam/dishrec/score"
)

// Request 是一次推荐请求（HTTP 层已完成鉴权与解析）。
type Request struct {
	UserID      string
	CategoryIDs []string
	SearchTerm  string
	Page        int
	Limit       int
}

// Pagination 分页信息。
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// RecommendedDish 是响应中的单个菜品：目录字段 + 各维度分数。
// 分数统一保留 2 位小数（原始相关度 4 位），保证展示稳定。
type RecommendedDish struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CategoryID   string  `json:"category_id"`
	IsBestSeller bool    `json:"is_best_seller"`
	Seasonal     bool    `json:"seasonal"`
	Active       bool    `json:"active"`

	BehaviorScore           float64 `json:"behavior_score"`
	NormalizedBehaviorScore float64 `json:"normalized_behavior_score"`
	RelevanceScore          float64 `json:"relevance_score"`
	NormalizedRelevance     float64 `json:"normalized_relevance_score"`
	RecencyScore            float64 `json:"recency_score"`
	NormalizedRecencyScore  float64 `json:"normalized_recency_score"`
	PriorityScore           float64 `json:"priority_score"`
}

// Response 是推荐接口的响应信封。
type Response struct {
	Success    bool               `json:"success"`
	Count      int                `json:"count"` // 过滤后、分页前的总数
	Pagination Pagination         `json:"pagination"`
	Data       []*RecommendedDish `json:"data"`
}

// Option 配置 Recommender 的可选能力。
type Option func(*Recommender)

// WithTasteBoost 启用 Feast 口味画像提权节点。
func WithTasteBoost(node *score.TasteBoostNode) Option {
	return func(r *Recommender) {
		r.taste = node
	}
}

// WithRuleFilter 追加一个 CEL 规则过滤器。
func WithRuleFilter(rule *filter.RuleFilter) Option {
	return func(r *Recommender) {
		r.rules = append(r.rules, rule)
	}
}

// WithClock 注入打分基准时钟（测试用）。
func WithClock(now func() time.Time) Option {
	return func(r *Recommender) {
		r.now = now
	}
}

// Recommender 把各阶段 Node 组装成标准打分链路：
//
//	Loader -> Behavior -> Spread -> Recency -> Priority
//	       -> [TasteBoost] -> Filter -> Page
//
// 无请求间共享可变状态：每次 Recommend 构造独立的 RecommendContext。
type Recommender struct {
	behavior core.BehaviorStore
	catalog  core.CatalogStore

	taste *score.TasteBoostNode
	rules []filter.Filter
	now   func() time.Time

	pipe *pipeline.Pipeline
}

func NewRecommender(behavior core.BehaviorStore, catalog core.CatalogStore, opts ...Option) *Recommender {
	r := &Recommender{
		behavior: behavior,
		catalog:  catalog,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	filters := []filter.Filter{&filter.CategoryFilter{}, &filter.KeywordFilter{}}
	filters = append(filters, r.rules...)

	nodes := []pipeline.Node{
		&recall.Loader{Behavior: behavior, Catalog: catalog},
		&score.BehaviorNode{},
		&score.SpreadNode{Catalog: catalog},
		&score.RecencyNode{},
		&score.PriorityNode{},
	}
	if r.taste != nil {
		nodes = append(nodes, r.taste)
	}
	nodes = append(nodes,
		&filter.FilterNode{Filters: filters},
		&rerank.PageNode{},
	)

	r.pipe = &pipeline.Pipeline{Nodes: nodes}
	return r
}

// Recommend 执行一次完整的推荐打分。
// 缺少 UserID 时返回 ErrUserIDRequired（HTTP 400 语义），不做任何计算。
func (r *Recommender) Recommend(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.UserID == "" {
		return nil, core.ErrUserIDRequired
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = rerank.DefaultPageLimit
	}

	rctx := &core.RecommendContext{
		UserID:      req.UserID,
		CategoryIDs: req.CategoryIDs,
		SearchTerm:  req.SearchTerm,
		Page:        page,
		Limit:       limit,
		Now:         r.now(),
		Scorecard:   core.NewScorecard(),
	}

	dishes, err := r.pipe.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	count := rctx.Scorecard.Total
	data := make([]*RecommendedDish, 0, len(dishes))
	for _, d := range dishes {
		data = append(data, toRecommendedDish(d))
	}

	return &Response{
		Success: true,
		Count:   count,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(count, limit),
		},
		Data: data,
	}, nil
}

func toRecommendedDish(d *core.Dish) *RecommendedDish {
	return &RecommendedDish{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		CategoryID:   d.CategoryID,
		IsBestSeller: d.IsBestSeller,
		Seasonal:     d.Seasonal,
		Active:       d.Active,

		BehaviorScore:           round2(d.Scores.Behavior),
		NormalizedBehaviorScore: round2(d.Scores.NormalizedBehavior),
		RelevanceScore:          round4(d.Scores.Relevance),
		NormalizedRelevance:     round2(d.Scores.NormalizedRelevance),
		RecencyScore:            round2(d.Scores.Recency),
		NormalizedRecencyScore:  round2(d.Scores.NormalizedRecency),
		PriorityScore:           round2(d.Scores.Priority),
	}
}

func totalPages(count, limit int) int {
	if count <= 0 || limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
