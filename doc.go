// Package dishrec 是一个菜品个性化推荐打分工具包。
//
// 设计要点：
// - Pipeline-first: 打分逻辑通过 Node 串联（Loader → Behavior → Spread → Recency → Priority → Filter → Page）
// - 请求级无状态: 所有分数从行为日志与目录现算，不持久化、无跨请求共享
// - Node 可扩展: 自定义 Node 即可插拔扩展（规则过滤、画像提权均以 Node 形式挂载）
package dishrec

import "github.com/rushteam/dishrec/pipeline"

// 轻量 facade：便于用户直接 import "dishrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindRank        = pipeline.KindRank
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
