package scheme

import "errors"

var (
	ErrScheme        = errors.New("not an internal url")
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingParam  = errors.New("missing parameter")
)
