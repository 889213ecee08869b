package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见的通用业务码。具体业务错误额外携带字符串 code。
const (
	OK             = 0
	InvalidParam   = 400
	SessionInvalid = 401
	SystemError    = 500
)
