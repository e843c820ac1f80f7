package store

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pkg/textnorm"
)

// MemoryBehaviorStore 是内存实现的行为日志存储，用于测试/开发/原型。
// 进程重启后数据丢失。
type MemoryBehaviorStore struct {
	mu     sync.RWMutex
	events []*core.BehaviorEvent
}

func NewMemoryBehaviorStore() *MemoryBehaviorStore {
	return &MemoryBehaviorStore{}
}

func (m *MemoryBehaviorStore) Name() string { return "memory" }

func (m *MemoryBehaviorStore) Append(ctx context.Context, event *core.BehaviorEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := *event
	m.events = append(m.events, &e)
	return nil
}

func (m *MemoryBehaviorStore) FindByUser(ctx context.Context, userID string, actions []core.ActionType) ([]*core.BehaviorEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := make(map[core.ActionType]struct{}, len(actions))
	for _, a := range actions {
		want[a] = struct{}{}
	}

	out := make([]*core.BehaviorEvent, 0)
	for _, e := range m.events {
		if e.UserID != userID {
			continue
		}
		if _, ok := want[e.ActionType]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *MemoryBehaviorStore) RecentSearches(ctx context.Context, userID string, limit int) ([]*core.BehaviorEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.BehaviorEvent, 0)
	for _, e := range m.events {
		if e.UserID == userID && e.ActionType == core.ActionSearch {
			out = append(out, e)
		}
	}
	// 时间倒序，最近的在前
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryBehaviorStore) List(ctx context.Context, q core.BehaviorQuery) ([]*core.BehaviorEvent, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*core.BehaviorEvent, 0)
	for _, e := range m.events {
		if q.UserID != "" && e.UserID != q.UserID {
			continue
		}
		if q.ActionType != "" && e.ActionType != q.ActionType {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	total := len(matched)
	page, limit := q.Page, q.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= total {
		return []*core.BehaviorEvent{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MemoryBehaviorStore) Close() error { return nil }

var _ core.BehaviorStore = (*MemoryBehaviorStore)(nil)

// MemoryCatalog 是内存实现的菜品目录，用于测试/开发/原型。
// 全文相关度用词频统计近似，相似度用词频向量余弦相似度近似，
// 量级上模拟生产后端（postgres ts_rank）的行为。
type MemoryCatalog struct {
	mu     sync.RWMutex
	dishes []*core.Dish
}

func NewMemoryCatalog(dishes []*core.Dish) *MemoryCatalog {
	return &MemoryCatalog{dishes: dishes}
}

func (m *MemoryCatalog) Name() string { return "memory" }

// Put 写入或覆盖一个菜品（按 ID）。
func (m *MemoryCatalog) Put(dish *core.Dish) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, d := range m.dishes {
		if d.ID == dish.ID {
			m.dishes[i] = dish
			return
		}
	}
	m.dishes = append(m.dishes, dish)
}

func (m *MemoryCatalog) AllWithRelevance(ctx context.Context, query string) ([]*core.Dish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	terms := strings.Fields(textnorm.Fold(query))
	out := make([]*core.Dish, 0, len(m.dishes))
	for _, d := range m.dishes {
		// 每次请求返回副本：派生分数字段是请求期状态，不回写目录
		dish := *d
		dish.Scores = core.DishScores{}
		dish.Labels = nil
		if len(terms) > 0 {
			freq := tokenFreq(dish.Name + " " + dish.Description)
			var rel float64
			for _, t := range terms {
				rel += float64(freq[t])
			}
			dish.Scores.Relevance = rel
		}
		out = append(out, &dish)
	}
	return out, nil
}

func (m *MemoryCatalog) SimilarTo(ctx context.Context, dish *core.Dish, limit int) ([]core.SimilarDish, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seed := tokenFreq(dish.Name + " " + dish.Description)

	out := make([]core.SimilarDish, 0)
	for _, d := range m.dishes {
		if d.ID == dish.ID {
			continue
		}
		sim := cosineSimilarity(seed, tokenFreq(d.Name+" "+d.Description))
		if sim > 0 {
			out = append(out, core.SimilarDish{ID: d.ID, Similarity: sim})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryCatalog) Close() error { return nil }

var _ core.CatalogStore = (*MemoryCatalog)(nil)

// tokenFreq 将文本归一化后拆成词频向量。
func tokenFreq(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range strings.Fields(textnorm.Fold(text)) {
		freq[w]++
	}
	return freq
}

// cosineSimilarity 计算两个词频向量的余弦相似度。
func cosineSimilarity(a, b map[string]int) float64 {
	var dot, normA, normB float64
	for k, va := range a {
		normA += float64(va) * float64(va)
		if vb, ok := b[k]; ok {
			dot += float64(va) * float64(vb)
		}
	}
	for _, vb := range b {
		normB += float64(vb) * float64(vb)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
