package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 注文まわりの固定メッセージ（クライアントが判別に使うので変えない）
const (
	MsgCartSizeLimitExceeded = "cart size limit exceeded"
	MsgUnknownCartProduct    = "unknown cart product"
	MsgNotFound              = "not found"
	MsgDBError               = "db error"
)
