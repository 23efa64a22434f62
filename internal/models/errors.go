package models

import "errors"

var (
	ErrInvalidSymbol    = errors.New("invalid symbol")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidQuote     = errors.New("invalid quote (high < low)")
	ErrInvalidVolume    = errors.New("invalid volume")
)
