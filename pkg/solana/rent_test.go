package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRentMinimumBalance(t *testing.T) {
	rent := DefaultRent()

	// Reference values produced by the Solana SDK's Rent::default().
	assert.EqualValues(t, 890880, rent.MinimumBalance(0))
	assert.EqualValues(t, 946560, rent.MinimumBalance(8))
	assert.EqualValues(t, 2039280, rent.MinimumBalance(165))
}

func TestRentIsExempt(t *testing.T) {
	rent := DefaultRent()

	min := rent.MinimumBalance(100)
	assert.True(t, rent.IsExempt(min, 100))
	assert.True(t, rent.IsExempt(min+1, 100))
	assert.False(t, rent.IsExempt(min-1, 100))
	assert.False(t, rent.IsExempt(0, 0))
}
