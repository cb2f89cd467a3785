package response

// AppError 接口层错误载体：业务码 + 展示文案 + 底层原因。
// 由店面/管理端 handler 经 RespondError 统一构造并写入日志。
type AppError struct {
	Code    int    // 业务码，与响应体 status_code 一致
	Message string // 面向顾客的提示文案（已本地化）
	Err     error  // 服务层或上游的原始错误
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 以业务码和文案包装底层错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
