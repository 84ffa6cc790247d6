package errorx

import (
	"errors"
	"fmt"

	"mutualinfo/infra/errorx/errCode"
)

// ErrorX 带错误码的error, 调用方按code分类处理
type ErrorX struct {
	code errCode.Code
	msg  string
}

func New(code errCode.Code, msg string) *ErrorX {
	return &ErrorX{code: code, msg: msg}
}

func Newf(code errCode.Code, format string, args ...any) *ErrorX {
	return &ErrorX{code: code, msg: fmt.Sprintf(format, args...)}
}

func (e *ErrorX) Error() string {
	return fmt.Sprintf("[%s] %s", e.code, e.msg)
}

func (e *ErrorX) Code() errCode.Code {
	return e.code
}

// IsCode 判断err是否携带指定错误码
func IsCode(err error, code errCode.Code) bool {
	var ex *ErrorX
	if errors.As(err, &ex) {
		return ex.code == code
	}
	return false
}
