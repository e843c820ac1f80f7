package core

import "time"

// ActionType 是行为日志的动作类型。
type ActionType string

const (
	ActionView   ActionType = "VIEW"   // 浏览
	ActionClick  ActionType = "CLICK"  // 点击
	ActionOrder  ActionType = "ORDER"  // 下单
	ActionCancel ActionType = "CANCEL" // 取消
	ActionSearch ActionType = "SEARCH" // 搜索（不关联菜品，携带 SearchQuery）
)

// BehaviorActionTypes 是参与行为打分的动作类型（不含 SEARCH）。
var BehaviorActionTypes = []ActionType{ActionView, ActionClick, ActionOrder, ActionCancel}

// Valid 检查动作类型是否为已知类型。
func (a ActionType) Valid() bool {
	switch a {
	case ActionView, ActionClick, ActionOrder, ActionCancel, ActionSearch:
		return true
	}
	return false
}

// BehaviorEvent 是一条用户行为日志。
//
// 由客户端埋点写入，写入后不可变，本子系统只读不删。
// 约束：
//   - 非 SEARCH 事件必须有 ItemID
//   - SEARCH 事件必须有 SearchQuery
type BehaviorEvent struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ItemID      string     `json:"item_id,omitempty"`      // SEARCH 事件为空
	ActionType  ActionType `json:"action_type"`
	SearchQuery string     `json:"search_query,omitempty"` // 仅 SEARCH 事件
	Timestamp   time.Time  `json:"timestamp"`
}

// Validate 校验事件字段完整性。
// 打分链路对脏数据采取“跳过不报错”策略，此方法只用于写入口校验。
func (e *BehaviorEvent) Validate() error {
	if !e.ActionType.Valid() {
		return ErrInvalidActionType
	}
	if e.ActionType == ActionSearch && e.SearchQuery == "" {
		return ErrSearchQueryRequired
	}
	if e.ActionType != ActionSearch && e.ItemID == "" {
		return ErrItemIDRequired
	}
	return nil
}
