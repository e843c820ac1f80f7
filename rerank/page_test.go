package rerank

import (
	"context"
	"fmt"
	"testing"

	"github.com/rushteam/dishrec/core"
)

func makeDishes(n int) []*core.Dish {
	out := make([]*core.Dish, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &core.Dish{ID: fmt.Sprintf("dish-%02d", i)})
	}
	return out
}

func TestPageNode(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		limit     int
		wantLen   int
		wantFirst string
	}{
		{"first page", 25, 1, 10, 10, "dish-00"},
		{"middle page", 25, 2, 10, 10, "dish-10"},
		{"last partial page", 25, 3, 10, 5, "dish-20"},
		{"out of range page empty", 25, 4, 10, 0, ""},
		{"defaults applied", 25, 0, 0, 20, "dish-00"},
	}

	node := &PageNode{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := &core.RecommendContext{
				Page:      tt.page,
				Limit:     tt.limit,
				Scorecard: core.NewScorecard(),
			}
			out, err := node.Process(context.Background(), rctx, makeDishes(tt.total))
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.wantLen {
				t.Fatalf("len(out) = %d, want %d", len(out), tt.wantLen)
			}
			if tt.wantLen > 0 && out[0].ID != tt.wantFirst {
				t.Errorf("out[0].ID = %s, want %s", out[0].ID, tt.wantFirst)
			}
			// 截断前的总数写回 Scorecard，供响应层算 totalPages
			if rctx.Scorecard.Total != tt.total {
				t.Errorf("Scorecard.Total = %d, want %d", rctx.Scorecard.Total, tt.total)
			}
		})
	}
}

func TestPageNode_NilContext(t *testing.T) {
	node := &PageNode{}
	out, err := node.Process(context.Background(), nil, makeDishes(3))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 3 {
		t.Errorf("len(out) = %d, want 3", len(out))
	}
}
