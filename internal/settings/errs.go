package settings

import "errors"

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid value")
	ErrInvalidType  = errors.New("invalid type")
)
