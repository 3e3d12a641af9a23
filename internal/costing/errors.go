package costing

import "errors"

var (
	ErrInvalidPurchaseFormat = errors.New("purchase quantity must be positive")
	ErrInvalidPortionCount   = errors.New("portion count must be positive")
	ErrInvalidBatchCount     = errors.New("batch count must be positive")
	ErrDanglingReference     = errors.New("dangling reference")
)
