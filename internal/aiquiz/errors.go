package aiquiz

import "errors"

var (
	ErrBadRequest       = errors.New("bad request")
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrGenerationFormat = errors.New("generated content has an unexpected format")
	ErrUpstream         = errors.New("content generation failed")
)

// RequestError carries a caller-facing message and matches ErrBadRequest.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func (e *RequestError) Unwrap() error { return ErrBadRequest }

func badRequest(msg string) error {
	return &RequestError{Msg: msg}
}
