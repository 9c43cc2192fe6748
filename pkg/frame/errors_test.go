package frame

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatching(t *testing.T) {
	err := ErrConstraintSeeds.WithAccount("vault")
	assert.True(t, errors.Is(err, ErrConstraintSeeds))
	assert.False(t, errors.Is(err, ErrConstraintHasOne))
	assert.Equal(t, "vault", err.Account())
	assert.Equal(t, CodeConstraintSeeds, err.Code())

	// Attribution never leaks back into the sentinel.
	assert.Equal(t, "", ErrConstraintSeeds.Account())

	formatted := NewErrorf(CodeFieldNotFound, "field %q not found", "owner")
	assert.True(t, errors.Is(formatted, ErrFieldNotFound))
	assert.Contains(t, formatted.Error(), `"owner"`)
}

func TestErrorCodeOf(t *testing.T) {
	wrapped := errors.Wrap(ErrConstraintHasOne.WithAccount("escrow"), "validating accounts")

	code, ok := CodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeConstraintHasOne, code)
	assert.True(t, errors.Is(wrapped, ErrConstraintHasOne))

	_, ok = CodeOf(errors.New("unrelated"))
	assert.False(t, ok)
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "ConstraintSeeds", CodeConstraintSeeds.String())
	assert.Equal(t, "AccountNotEnoughAccountKeys", CodeAccountNotEnoughAccountKeys.String())
	assert.Equal(t, "ReallocIncreaseTooLarge", CodeReallocIncreaseTooLarge.String())
	assert.Equal(t, "Custom(6001)", (CustomErrorOffset + 1).String())
}

func TestErrorMessageAttribution(t *testing.T) {
	assert.Equal(t,
		"a has one constraint was violated: account escrow",
		ErrConstraintHasOne.WithAccount("escrow").Error(),
	)
	assert.Equal(t,
		"a has one constraint was violated",
		ErrConstraintHasOne.Error(),
	)
}
