package errorx

import "fmt"

var Unknown = Error{Code: 100000, Message: "Request failed"}

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	return e.Message
}
