package requests

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("visit request not found")
	ErrMarketNotFound   = errors.New("market not found")
	ErrAlreadyDecided   = errors.New("visit request already decided")
	ErrDuplicateRequest = errors.New("pending request already exists")
	ErrNotRequester     = errors.New("only the requester may cancel")
)
