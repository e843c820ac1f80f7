package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/dishrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("dish", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// RuleFilter 是 CEL (Common Expression Language) 驱动的规则过滤器，
// 用于把运营侧的保留条件写成表达式而不是代码。
//
// 表达式返回 true 表示保留，false 表示过滤。
//
// 示例：
//   - `dish.active` → 只保留上架菜品
//   - `dish.price < 200000.0` → 价格上限
//   - `dish.active && (dish.is_best_seller || dish.score > 50.0)` → 组合条件
type RuleFilter struct {
	expr string
	prg  cel.Program
}

// NewRuleFilter 编译一条 CEL 保留表达式。表达式在构造时编译一次，
// 之后可并发复用。空表达式非法。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	if expr == "" {
		return nil, fmt.Errorf("rule expression is empty")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	return &RuleFilter{expr: expr, prg: prg}, nil
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	dish *core.Dish,
) (bool, error) {
	out, _, err := f.prg.Eval(buildRuleInput(rctx, dish))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return !keep, nil
}

func buildRuleInput(rctx *core.RecommendContext, dish *core.Dish) map[string]interface{} {
	dishMap := map[string]interface{}{
		"id":             dish.ID,
		"name":           dish.Name,
		"description":    dish.Description,
		"price":          dish.Price,
		"category_id":    dish.CategoryID,
		"is_best_seller": dish.IsBestSeller,
		"seasonal":       dish.Seasonal,
		"active":         dish.Active,
		"score":          dish.Scores.Priority,
	}

	rctxMap := map[string]interface{}{}
	if rctx != nil {
		rctxMap["user_id"] = rctx.UserID
		rctxMap["search_term"] = rctx.SearchTerm
	}

	return map[string]interface{}{
		"dish": dishMap,
		"rctx": rctxMap,
	}
}
