package common

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrNotFound 未找到错误
	ErrNotFound = eris.New("not found")

	// ErrInvalidInput 无效输入错误
	ErrInvalidInput = eris.New("invalid input")

	// ErrSourceUnavailable 数据源不可用
	ErrSourceUnavailable = eris.New("data source unavailable")

	// ErrMalformedData 数据文件格式错误
	ErrMalformedData = eris.New("malformed data")

	// ErrStorageFailed 存储失败错误
	ErrStorageFailed = eris.New("storage failed")
)

// 错误码(返回给前端)
const (
	CodeNotFound     = "not_found"
	CodeInvalidInput = "invalid_input"
	CodeInternal     = "internal_error"
)

// AppError 应用错误
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap 支持 errors.Is / eris.Is
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 创建应用错误
func NewAppError(code string, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidInput 参数错误
func InvalidInput(message string) *AppError {
	return NewAppError(CodeInvalidInput, message, ErrInvalidInput)
}

// CodeOf 根据错误链推断错误码
func CodeOf(err error) string {
	var appErr *AppError
	if eris.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case eris.Is(err, ErrNotFound):
		return CodeNotFound
	case eris.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}
