package core

import "context"

// BehaviorStore 是行为日志存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 实现：
//   - store.MemoryBehaviorStore（测试/开发/原型）
//   - store.RedisBehaviorStore（生产常用，按时间戳有序）
type BehaviorStore interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Append 写入一条行为日志（写入后不可变）
	Append(ctx context.Context, event *BehaviorEvent) error

	// FindByUser 返回某用户指定动作类型的全部行为事件
	FindByUser(ctx context.Context, userID string, actions []ActionType) ([]*BehaviorEvent, error)

	// RecentSearches 返回某用户最近 limit 条 SEARCH 事件，按时间倒序
	RecentSearches(ctx context.Context, userID string, limit int) ([]*BehaviorEvent, error)

	// List 分页查询行为日志（userID 为空时查全量），返回当前页与过滤后总数
	List(ctx context.Context, q BehaviorQuery) ([]*BehaviorEvent, int, error)

	// Close 关闭连接/释放资源
	Close() error
}

// BehaviorQuery 是行为日志列表查询条件。
type BehaviorQuery struct {
	UserID     string
	ActionType ActionType // 为空时不过滤
	Page       int        // 从 1 开始
	Limit      int
}

// CatalogStore 是菜品目录存储的领域接口。
//
// 全文检索能力被显式下放给存储实现：core 只要求存储能按任意查询串
// 给每个菜品打一个非负相关度分，并能按一个菜品自身文本找相似菜品。
type CatalogStore interface {
	Name() string

	// AllWithRelevance 返回全部菜品并附带对 query 的全文相关度分。
	// query 为空时所有菜品 relevance = 0。
	AllWithRelevance(ctx context.Context, query string) ([]*Dish, error)

	// SimilarTo 以 dish 自身的 name+description 为查询，返回最相似的
	// limit 个菜品及相似度（排除 dish 本身）。
	SimilarTo(ctx context.Context, dish *Dish, limit int) ([]SimilarDish, error)

	Close() error
}

// SimilarDish 是相似菜品查询结果。
type SimilarDish struct {
	ID         string
	Similarity float64
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreUnavailable 表示存储不可用（目录拉取失败时对整个请求致命）
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: backend unavailable")
)
