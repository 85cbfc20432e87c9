package output

import "errors"

var (
	ErrStorage           = errors.New("storage error")
	ErrStorageValidation = errors.New("storage validation failed")
)
