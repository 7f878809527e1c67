package apperror

import "errors"

var (
	ErrInvalidIndex   = errors.New("invalid cell index")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMessageMissing = errors.New("message template not found")
)
