package source

import "errors"

var (
	ErrFolderNotFound   = errors.New("source folder not found")
	ErrUnsupportedImage = errors.New("unsupported image")
)
