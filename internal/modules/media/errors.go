package media

import "errors"

var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrBadSignature    = errors.New("signature is invalid")
	ErrLinkExpired     = errors.New("link has expired")
	ErrHostNotAllowed  = errors.New("host is not on the proxy allow list")
)
