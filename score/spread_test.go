package score

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/dishrec/core"
)

// stubCatalog 按 dishID 返回预置的相似菜品列表，可指定失败的 ID。
type stubCatalog struct {
	similar map[string][]core.SimilarDish
	failIDs map[string]bool
}

func (s *stubCatalog) Name() string { return "stub" }

func (s *stubCatalog) AllWithRelevance(ctx context.Context, query string) ([]*core.Dish, error) {
	return nil, nil
}

func (s *stubCatalog) SimilarTo(ctx context.Context, dish *core.Dish, limit int) ([]core.SimilarDish, error) {
	if s.failIDs[dish.ID] {
		return nil, errors.New("backend down")
	}
	return s.similar[dish.ID], nil
}

func (s *stubCatalog) Close() error { return nil }

func spreadDishes(ids ...string) []*core.Dish {
	out := make([]*core.Dish, 0, len(ids))
	for _, id := range ids {
		out = append(out, &core.Dish{ID: id, Name: id})
	}
	return out
}

func TestSpreadNode_BonusFormula(t *testing.T) {
	rctx := newRctx()
	rctx.Scorecard.Behavior["dish-a"] = 0.2
	rctx.Scorecard.RecordAction("dish-a", core.ActionOrder)

	node := &SpreadNode{Catalog: &stubCatalog{
		similar: map[string][]core.SimilarDish{
			"dish-a": {{ID: "dish-b", Similarity: 0.5}},
		},
	}}

	if _, err := node.Process(context.Background(), rctx, spreadDishes("dish-a", "dish-b")); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// bonus = 0.2 * (0.5 * |1.0|) * 0.5 = 0.05
	if got := rctx.Scorecard.Behavior["dish-b"]; !almostEqual(got, 0.05) {
		t.Errorf("Behavior[dish-b] = %v, want 0.05", got)
	}
	// 种子自身不变
	if got := rctx.Scorecard.Behavior["dish-a"]; !almostEqual(got, 0.2) {
		t.Errorf("Behavior[dish-a] = %v, want 0.2", got)
	}
}

func TestSpreadNode_NegativeScoreNotASeed(t *testing.T) {
	rctx := newRctx()
	rctx.Scorecard.Behavior["dish-a"] = -0.1 // 纯 CANCEL 菜品
	rctx.Scorecard.RecordAction("dish-a", core.ActionCancel)

	node := &SpreadNode{Catalog: &stubCatalog{
		similar: map[string][]core.SimilarDish{
			"dish-a": {{ID: "dish-b", Similarity: 0.9}},
		},
	}}

	if _, err := node.Process(context.Background(), rctx, spreadDishes("dish-a", "dish-b")); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := rctx.Scorecard.Behavior["dish-b"]; got != 0 {
		t.Errorf("Behavior[dish-b] = %v, want 0 (negative seeds must not spread)", got)
	}
}

func TestSpreadNode_SimilarityFloor(t *testing.T) {
	rctx := newRctx()
	rctx.Scorecard.Behavior["dish-a"] = 0.2
	rctx.Scorecard.RecordAction("dish-a", core.ActionOrder)

	node := &SpreadNode{Catalog: &stubCatalog{
		similar: map[string][]core.SimilarDish{
			"dish-a": {
				{ID: "dish-b", Similarity: 0.0005}, // 低于下限
				{ID: "dish-a", Similarity: 1.0},    // 自身
				{ID: "dish-x", Similarity: 0.8},    // 不在候选集
			},
		},
	}}

	if _, err := node.Process(context.Background(), rctx, spreadDishes("dish-a", "dish-b")); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := rctx.Scorecard.Behavior["dish-b"]; got != 0 {
		t.Errorf("Behavior[dish-b] = %v, want 0", got)
	}
	if got := rctx.Scorecard.Behavior["dish-a"]; !almostEqual(got, 0.2) {
		t.Errorf("Behavior[dish-a] = %v, want 0.2 (no self bonus)", got)
	}
	if _, ok := rctx.Scorecard.Behavior["dish-x"]; ok {
		t.Error("dish-x is not a candidate, must not receive bonus")
	}
}

func TestSpreadNode_FailSoftPerSeed(t *testing.T) {
	rctx := newRctx()
	rctx.Scorecard.Behavior["dish-a"] = 0.2
	rctx.Scorecard.Behavior["dish-c"] = 0.2
	rctx.Scorecard.RecordAction("dish-a", core.ActionOrder)
	rctx.Scorecard.RecordAction("dish-c", core.ActionOrder)

	node := &SpreadNode{Catalog: &stubCatalog{
		similar: map[string][]core.SimilarDish{
			"dish-c": {{ID: "dish-b", Similarity: 0.5}},
		},
		failIDs: map[string]bool{"dish-a": true},
	}}

	// dish-a 的相似查询失败：只丢弃它的扩散贡献，不报错
	if _, err := node.Process(context.Background(), rctx, spreadDishes("dish-a", "dish-b", "dish-c")); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := rctx.Scorecard.Behavior["dish-b"]; !almostEqual(got, 0.05) {
		t.Errorf("Behavior[dish-b] = %v, want 0.05 (dish-c's contribution survives)", got)
	}
}

func TestSpreadNode_FallbackActionWeight(t *testing.T) {
	rctx := newRctx()
	rctx.Scorecard.Behavior["dish-a"] = 0.2 // 无动作记录，兜底权重 0.3

	node := &SpreadNode{Catalog: &stubCatalog{
		similar: map[string][]core.SimilarDish{
			"dish-a": {{ID: "dish-b", Similarity: 0.5}},
		},
	}}

	if _, err := node.Process(context.Background(), rctx, spreadDishes("dish-a", "dish-b")); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// bonus = 0.2 * (0.5 * 0.3) * 0.5 = 0.015
	if got := rctx.Scorecard.Behavior["dish-b"]; !almostEqual(got, 0.015) {
		t.Errorf("Behavior[dish-b] = %v, want 0.015", got)
	}
}

func TestStrongestActionWeight(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.ActionType
		want    float64
	}{
		{"empty falls back", nil, SpreadFallbackWeight},
		{"single", []core.ActionType{core.ActionView}, 0.3},
		{"order beats view", []core.ActionType{core.ActionView, core.ActionOrder}, 1.0},
		{"cancel magnitude beats view", []core.ActionType{core.ActionView, core.ActionCancel}, -0.5},
		{"unknown action weighs zero", []core.ActionType{"PURCHASE"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strongestActionWeight(tt.actions); !almostEqual(got, tt.want) {
				t.Errorf("strongestActionWeight(%v) = %v, want %v", tt.actions, got, tt.want)
			}
		})
	}
}
