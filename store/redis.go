package store

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/rushteam/dishrec/core"
)

// RedisBehaviorStore 是 Redis 实现的行为日志存储。
// 生产环境常用，支持持久化、集群、哨兵等。
//
// 存储布局：
//   - behavior:{user}         ZSET，member 为事件 JSON，score 为 unix 时间戳
//   - behavior:{user}:search  ZSET，仅 SEARCH 事件，便于 O(limit) 取最近搜索
//   - behavior:all            ZSET，全量事件，支撑后台列表查询
type RedisBehaviorStore struct {
	client *redis.Client
}

func NewRedisBehaviorStore(addr string, db int) (*RedisBehaviorStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisBehaviorStore{client: client}, nil
}

func (r *RedisBehaviorStore) Name() string { return "redis" }

func (r *RedisBehaviorStore) Append(ctx context.Context, event *core.BehaviorEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	z := redis.Z{Score: float64(event.Timestamp.Unix()), Member: string(data)}

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, r.userKey(event.UserID), z)
	pipe.ZAdd(ctx, "behavior:all", z)
	if event.ActionType == core.ActionSearch {
		pipe.ZAdd(ctx, r.searchKey(event.UserID), z)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisBehaviorStore) FindByUser(ctx context.Context, userID string, actions []core.ActionType) ([]*core.BehaviorEvent, error) {
	members, err := r.client.ZRevRange(ctx, r.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	want := make(map[core.ActionType]struct{}, len(actions))
	for _, a := range actions {
		want[a] = struct{}{}
	}

	out := make([]*core.BehaviorEvent, 0, len(members))
	for _, m := range members {
		var e core.BehaviorEvent
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			// 脏数据跳过，不拖垮整个请求
			continue
		}
		if _, ok := want[e.ActionType]; !ok {
			continue
		}
		out = append(out, &e)
	}
	return out, nil
}

func (r *RedisBehaviorStore) RecentSearches(ctx context.Context, userID string, limit int) ([]*core.BehaviorEvent, error) {
	stop := int64(limit - 1)
	if limit <= 0 {
		stop = -1
	}
	members, err := r.client.ZRevRange(ctx, r.searchKey(userID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*core.BehaviorEvent, 0, len(members))
	for _, m := range members {
		var e core.BehaviorEvent
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			continue
		}
		out = append(out, &e)
	}
	return out, nil
}

func (r *RedisBehaviorStore) List(ctx context.Context, q core.BehaviorQuery) ([]*core.BehaviorEvent, int, error) {
	key := "behavior:all"
	if q.UserID != "" {
		key = r.userKey(q.UserID)
	}
	members, err := r.client.ZRevRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*core.BehaviorEvent, 0, len(members))
	for _, m := range members {
		var e core.BehaviorEvent
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			continue
		}
		if q.ActionType != "" && e.ActionType != q.ActionType {
			continue
		}
		matched = append(matched, &e)
	}

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

func (r *RedisBehaviorStore) Close() error {
	return r.client.Close()
}

func (r *RedisBehaviorStore) userKey(userID string) string   { return "behavior:" + userID }
func (r *RedisBehaviorStore) searchKey(userID string) string { return "behavior:" + userID + ":search" }

var _ core.BehaviorStore = (*RedisBehaviorStore)(nil)
