package assistant

import "errors"

var (
	// ErrEmptyInput indicates the request had no text to work with.
	ErrEmptyInput = errors.New("input is empty")
)
