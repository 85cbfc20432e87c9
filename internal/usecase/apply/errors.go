package apply

import "errors"

var (
	ErrSourceNotFound      = errors.New("source folder not found")
	ErrLogoNotFound        = errors.New("logo file not found")
	ErrInvalidLogo         = errors.New("logo file is not a readable image")
	ErrDestinationRequired = errors.New("destination folder is required")
	ErrInvalidOptions      = errors.New("invalid options")
	ErrNoImages            = errors.New("no images found in source folder")
	ErrNoPositions         = errors.New("no positions recorded")
)
