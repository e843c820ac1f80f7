package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "scorer", "api"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore  = "store"  // 存储模块
	ModuleScorer = "scorer" // 打分模块
	ModuleAPI    = "api"    // 接口模块
)

// 预定义错误
var (
	// ErrUserIDRequired 推荐请求缺少 user_id（HTTP 400 语义，不做任何计算）
	ErrUserIDRequired = NewDomainError(ModuleAPI, ErrorCodeInvalidInput, "user_id is required")

	// ErrInvalidActionType 未知动作类型
	ErrInvalidActionType = NewDomainError(ModuleAPI, ErrorCodeInvalidInput, "invalid action_type")

	// ErrSearchQueryRequired SEARCH 事件缺少 search_query
	ErrSearchQueryRequired = NewDomainError(ModuleAPI, ErrorCodeInvalidInput, "search_query is required for SEARCH action")

	// ErrItemIDRequired 非 SEARCH 事件缺少 item_id
	ErrItemIDRequired = NewDomainError(ModuleAPI, ErrorCodeInvalidInput, "item_id is required for non-SEARCH actions")
)

// IsInvalidInput 检查错误是否为 INVALID_INPUT。
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
