package solana

import (
	"math"

	"github.com/pkg/errors"
)

var ErrLamportOverflow = errors.New("lamport arithmetic overflow")

// AddLamports returns a + b, failing instead of wrapping on overflow.
// Balance mutations must never wrap silently.
func AddLamports(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrLamportOverflow
	}

	return a + b, nil
}

// SubLamports returns a - b, failing instead of wrapping on underflow.
func SubLamports(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrLamportOverflow
	}

	return a - b, nil
}
