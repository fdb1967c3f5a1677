package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where a request failed.
type ErrorKind string

const (
	KindInput      ErrorKind = "input"
	KindExtraction ErrorKind = "extraction"
	KindParse      ErrorKind = "parse"
	KindUpstream   ErrorKind = "upstream"
	KindInternal   ErrorKind = "internal"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewInputError(message string, err error) *AppError {
	return &AppError{Kind: KindInput, Message: message, Err: err}
}

func NewExtractionError(message string, err error) *AppError {
	return &AppError{Kind: KindExtraction, Message: message, Err: err}
}

func NewParseError(message string, err error) *AppError {
	return &AppError{Kind: KindParse, Message: message, Err: err}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
