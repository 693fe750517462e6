package util

import "errors"

var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNoData            = errors.New("no data available")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrStorage           = errors.New("storage error")
)
