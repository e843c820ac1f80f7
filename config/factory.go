// Package config 提供配置驱动的 Pipeline 组装：
// YAML/JSON 里声明 Node 链，由 NodeFactory 按类型构建。
package config

import (
	"fmt"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/feast"
	"github.com/rushteam/dishrec/filter"
	"github.com/rushteam/dishrec/pipeline"
	"github.com/rushteam/dishrec/pkg/conv"
	"github.com/rushteam/dishrec/recall"
	"github.com/rushteam/dishrec/rerank"
	"github.com/rushteam/dishrec/score"
)

// Deps 注入配置无法表达的外部协作方（存储、特征服务）。
type Deps struct {
	Behavior core.BehaviorStore
	Catalog  core.CatalogStore
	Feast    feast.Client // 可空；为空时 score.taste_boost 不可用
}

// DefaultFactory 返回一个包含所有内置 Node 的工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("recall.loader", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &recall.Loader{
			Behavior:    deps.Behavior,
			Catalog:     deps.Catalog,
			SearchLimit: conv.ConfigGetInt(cfg, "search_limit", 0),
		}, nil
	})

	factory.Register("score.behavior", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &score.BehaviorNode{}, nil
	})

	factory.Register("score.spread", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &score.SpreadNode{
			Catalog:       deps.Catalog,
			TopK:          conv.ConfigGetInt(cfg, "top_k", 0),
			MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		}, nil
	})

	factory.Register("score.recency", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &score.RecencyNode{}, nil
	})

	factory.Register("score.priority", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &score.PriorityNode{}, nil
	})

	factory.Register("score.taste_boost", func(cfg map[string]interface{}) (pipeline.Node, error) {
		if deps.Feast == nil {
			return nil, fmt.Errorf("score.taste_boost requires a feast client")
		}
		return &score.TasteBoostNode{
			Client:  deps.Feast,
			Project: conv.ConfigGet[string](cfg, "project", ""),
			Boost:   conv.ConfigGetFloat(cfg, "boost", 0),
		}, nil
	})

	factory.Register("filter", buildFilterNode)

	factory.Register("rerank.page", func(cfg map[string]interface{}) (pipeline.Node, error) {
		return &rerank.PageNode{}, nil
	})

	return factory
}

func buildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		// 无显式配置时取默认过滤链：类目 -> 名称关键词
		return &filter.FilterNode{
			Filters: []filter.Filter{&filter.CategoryFilter{}, &filter.KeywordFilter{}},
		}, nil
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		fcMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		switch filterType := conv.ConfigGet[string](fcMap, "type", ""); filterType {
		case "category":
			filters = append(filters, &filter.CategoryFilter{})
		case "keyword":
			filters = append(filters, &filter.KeywordFilter{})
		case "rule":
			expr := conv.ConfigGet[string](fcMap, "expr", "")
			rule, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("rule filter: %w", err)
			}
			filters = append(filters, rule)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.FilterNode{Filters: filters}, nil
}
