package serverutils

import "simple-notes-be/internal/pkg/apperror"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type BaseResponse[T any] struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrorBody struct {
	Status  string        `json:"status"`
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Error   apperror.Kind `json:"error"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

// CreatedResponse is SuccessResponse for 201 replies.
func CreatedResponse[T any](message string, data T) BaseResponse[T] {
	res := SuccessResponse(message, data)
	res.Code = 201
	return res
}

func ErrorResponse(code int, kind apperror.Kind, message string) ErrorBody {
	return ErrorBody{
		Status:  StatusError,
		Code:    code,
		Message: message,
		Error:   kind,
	}
}
