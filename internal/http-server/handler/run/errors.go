package run

import "errors"

var (
	ErrInvalidBody  = errors.New("invalid request body")
	ErrInvalidHover = errors.New("invalid hover point")
)
