package download

import "errors"

var (
	ErrTerminal        = errors.New("download already finished")
	ErrInvalidProgress = errors.New("invalid progress")
	ErrUnknownEvent    = errors.New("unknown download event")
)
