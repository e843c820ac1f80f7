package core

import "github.com/rushteam/dishrec/pkg/utils"

// Dish 是菜品目录实体，打分链路的统一承载结构。
// 目录字段在本子系统内只读；Scores 为请求期派生字段，随响应返回、不落库。
type Dish struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	CategoryID   string
	IsBestSeller bool
	Seasonal     bool
	Active       bool

	// Scores 各维度原始分/归一分/最终优先级分
	Scores DishScores

	// Labels 用于解释与策略驱动（召回来源、过滤原因、提权来源等）
	Labels map[string]utils.Label
}

// DishScores 是一次请求内为菜品计算的全部分数。
//
// Relevance 由目录存储的全文检索能力给出（无搜索历史时恒为 0）；
// Behavior / Recency 由行为日志推导；Priority 为三者归一后的加权融合。
type DishScores struct {
	Relevance float64 // 原始全文相关度，>= 0
	Behavior  float64 // 行为分（可为负，CANCEL 贡献负分）
	Recency   float64 // 新鲜度分，[0, 14]

	NormalizedRelevance float64 // 0-100
	NormalizedBehavior  float64 // 0-100
	NormalizedRecency   float64 // 0-100

	Priority float64 // 0.4*行为 + 0.4*相关度 + 0.2*新鲜度
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (d *Dish) PutLabel(key string, lbl utils.Label) {
	if d.Labels == nil {
		d.Labels = make(map[string]utils.Label)
	}
	if old, ok := d.Labels[key]; ok {
		d.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	d.Labels[key] = lbl
}
