// Package errors defines the sentinel errors shared by the pow2 packages.
package errors

import "errors"

var (
	// ErrNonPositive occurs when an operation that is only defined for strictly
	// positive integers receives zero or a negative value.
	ErrNonPositive = errors.New("pow2: argument must be strictly positive")
	// ErrPowerOfTwoOverflow occurs when the power of two asked for is larger than
	// the greatest power of two the integer type can hold.
	ErrPowerOfTwoOverflow = errors.New("pow2: power of two overflows the integer type")
	// ErrNotPowerOfTwo occurs when an argument is required to be a power of two and is not.
	ErrNotPowerOfTwo = errors.New("pow2: argument is not a power of two")
	// ErrInvalidSize occurs when a container is configured with an unusable size.
	ErrInvalidSize = errors.New("pow2: invalid size")
	// ErrPoolClosed occurs when a task is scheduled on a released pool.
	ErrPoolClosed = errors.New("pow2: pool has been released")
)
