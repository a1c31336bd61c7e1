package usecase

import "errors"

var (
	ErrLoginFailed   = errors.New("source site login failed")
	ErrPageFetch     = errors.New("source page fetch failed")
	ErrUnknownLeague = errors.New("league could not be resolved")
)
