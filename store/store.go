package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.BehaviorStore 和 core.CatalogStore 接口。
//
// 示例：
//   var behavior core.BehaviorStore = NewMemoryBehaviorStore()
//   var catalog core.CatalogStore = NewMemoryCatalog(dishes)
