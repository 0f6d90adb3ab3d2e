package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrNoSession         = errors.New("no active instrument session")
	ErrNoPrice           = errors.New("no current price available")
	ErrInvalidRisk       = errors.New("invalid risk parameters")
	ErrInvalidSide       = errors.New("invalid order side")
	ErrAnalysisPending   = errors.New("analysis already in progress")
	ErrRateLimited       = errors.New("rate limited")
)
