// Package math provides power-of-two predicates and rounding for every
// fixed-width integer type.
//
// All functions are pure, allocation-free and safe for concurrent use. The
// bit width is taken from the argument's type.
//
// Preconditions are enforced with panics that wrap a sentinel from pkg/errors:
//
//	FloorToPowerOfTwo(x)   x > 0                     ErrNonPositive
//	CeilToPowerOfTwo(x)    x <= MaxPowerOfTwo[T]()   ErrPowerOfTwoOverflow
//	AlignUp(x, align)      IsPowerOfTwo(align)       ErrNotPowerOfTwo
//
// CeilToPowerOfTwo thresholds per width (largest accepted input):
//
//	int8 64, uint8 128, int16 16384, uint16 32768,
//	int32 1<<30, uint32 1<<31, int64 1<<62, uint64 1<<63.
//
// int, uint and uintptr follow the 32- or 64-bit row of the platform.
package math

import (
	"fmt"
	"unsafe"

	"github.com/tezrry/pow2/pkg/errors"
)

// Signed is the set of signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is the set of fixed-width binary integer types.
type Integer interface {
	Signed | Unsigned
}

// IsPowerOfTwo reports whether x is a power of two. Zero and negative values
// are not.
func IsPowerOfTwo[T Integer](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// MaxPowerOfTwo returns the greatest power of two representable by T.
func MaxPowerOfTwo[T Integer]() T {
	var x T
	top := width(x) - 1
	if isSigned[T]() {
		top--
	}
	return T(1) << top
}

// CeilToPowerOfTwo returns the least power of two greater than or equal to x.
// Any x <= 1 yields 1. It panics if x > MaxPowerOfTwo[T]().
func CeilToPowerOfTwo[T Integer](x T) T {
	if x <= 1 {
		return 1
	}
	if x > MaxPowerOfTwo[T]() {
		panic(fmt.Errorf("%w: ceil of %v", errors.ErrPowerOfTwoOverflow, x))
	}

	x--
	x = smear(x)
	x++
	return x
}

// FloorToPowerOfTwo returns the greatest power of two less than or equal to x.
// It panics if x <= 0.
func FloorToPowerOfTwo[T Integer](x T) T {
	if x <= 0 {
		panic(fmt.Errorf("%w: floor of %v", errors.ErrNonPositive, x))
	}

	x = smear(x)
	return x - x>>1
}

// ClosestPowerOfTwo returns the power of two nearest to x, preferring the
// larger one on a tie. When the larger one does not fit in T the result is
// MaxPowerOfTwo[T](). It panics if x <= 0.
func ClosestPowerOfTwo[T Integer](x T) T {
	if x <= 0 {
		panic(fmt.Errorf("%w: closest of %v", errors.ErrNonPositive, x))
	}
	if top := MaxPowerOfTwo[T](); x > top {
		return top
	}

	next := CeilToPowerOfTwo(x)
	if prev := next >> 1; x-prev < next-x {
		return prev
	}
	return next
}

// AlignUp rounds x up to the next multiple of align, which must be a power of
// two. The result wraps if it does not fit in T.
func AlignUp[T Integer](x, align T) T {
	if !IsPowerOfTwo(align) {
		panic(fmt.Errorf("%w: alignment %v", errors.ErrNotPowerOfTwo, align))
	}

	mask := align - 1
	return (x + mask) &^ mask
}

// smear sets every bit below the highest set bit of a non-negative x.
func smear[T Integer](x T) T {
	w := width(x)
	for s := uintptr(1); s < w; s <<= 1 {
		x |= x >> s
	}
	return x
}

func width[T Integer](x T) uintptr {
	return unsafe.Sizeof(x) << 3
}

func isSigned[T Integer]() bool {
	var x T
	return ^x < 0
}
