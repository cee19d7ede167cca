package domain

import "errors"

var (
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrInvalidNews      = errors.New("invalid news item")
	ErrNoSources        = errors.New("no dataset source succeeded")
	ErrCountryNotFound  = errors.New("country not found")
	ErrRegulatorMissing = errors.New("regulator not found")
	ErrSessionNotFound  = errors.New("layout session not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrInvalidMode      = errors.New("invalid graph mode")
	ErrInvalidTheme     = errors.New("invalid theme preference")
	ErrInvalidCanvas    = errors.New("invalid canvas size")
	ErrUnsupportedSrc   = errors.New("unsupported source")
)
