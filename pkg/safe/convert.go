// Package safe provides numeric conversions that fail instead of wrapping around.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is wrapped by every failed conversion.
var ErrOutOfRange = errors.New("value out of range")

// Integer is any integer kind the block index and the exported rows use.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Int32 converts v to int32, used for heights.
func Int32[T Integer](v T) (int32, error) {
	if !fits(v, math.MinInt32, math.MaxInt32) {
		return 0, rangeErr(v, "int32")
	}
	return int32(v), nil
}

// Uint32 converts v to uint32.
func Uint32[T Integer](v T) (uint32, error) {
	if !fits(v, 0, math.MaxUint32) {
		return 0, rangeErr(v, "uint32")
	}
	return uint32(v), nil
}

// Uint64 converts v to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if !fits(v, 0, math.MaxUint64) {
		return 0, rangeErr(v, "uint64")
	}
	return uint64(v), nil
}

func fits[T Integer](v T, lo int64, hi uint64) bool {
	if v < 0 {
		return int64(v) >= lo
	}
	return uint64(v) <= hi
}

func rangeErr[T Integer](v T, target string) error {
	return fmt.Errorf("value %d out of %s range: %w", v, target, ErrOutOfRange)
}
