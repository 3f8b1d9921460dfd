package pkg

import "fmt"

// AppError is the domain error carried from use cases to the HTTP edge.
//
// Handlers map use case sentinel errors into AppError values; the HTTP
// layer serializes them with ToHTTPError so every endpoint returns the
// same error envelope.

type AppError struct {
	Code       string
	Message    string
	Cause      error
	HTTPStatus int
}

// HTTPError is the JSON error envelope returned by the API.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewDomainError(code, message string, cause error, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Cause:      cause,
		HTTPStatus: httpStatus,
	}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return NewDomainError(code, message, nil, httpStatus)
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}
