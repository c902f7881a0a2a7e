package services

import "errors"

// Admission service errors
var (
	ErrNilInput = errors.New("no input stream")
)
