package errors

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientStake = errors.New("staked balance is insufficient")
	ErrTransferFailed    = errors.New("asset transfer failed")
)
