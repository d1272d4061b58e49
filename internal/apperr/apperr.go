package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别（用于前端提示与 HTTP 状态码映射）
type Kind string

const (
	FileTooLarge          Kind = "FileTooLarge"
	UnsupportedExtension  Kind = "UnsupportedExtension"
	InvalidWorkbook       Kind = "InvalidWorkbook"
	HeaderMismatch        Kind = "HeaderMismatch"
	MissingRespondentType Kind = "MissingRespondentType"
	IncompleteBucket      Kind = "IncompleteBucket"
	MissingSelection      Kind = "MissingSelection"
	NetworkFailure        Kind = "NetworkFailure"
	RemoteRejection       Kind = "RemoteRejection"
	Timeout               Kind = "Timeout"
	CacheMiss             Kind = "CacheMiss"

	NotFound        Kind = "NotFound"
	InvalidArgument Kind = "InvalidArgument"
	Busy            Kind = "Busy"
	Internal        Kind = "Internal"
)

// Error 带类别的业务错误
// Message 为直接展示给用户的文案，Detail 为附加数据（如期望表头）
type Error struct {
	Kind    Kind
	Message string
	Detail  any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 同类别即视为相等，便于 errors.Is(err, apperr.New(kind, ""))
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New 创建错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetail 创建带附加数据的错误
func WithDetail(kind Kind, message string, detail any) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// Wrap 包装底层错误
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf 返回错误类别；非 *Error 一律视为 Internal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind 判断错误链中是否存在指定类别
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// MessageOf 返回用户可读文案
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "요청을 처리하지 못했습니다. 잠시 후 다시 시도해 주세요."
}

// DetailOf 返回附加数据
func DetailOf(err error) any {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return nil
}
