package solana

import (
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a program address can be
	// derived from, including the bump seed.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single derivation seed.
	MaxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")

	// ErrBumpNotFound is returned when no bump seed in [1, 255] produces
	// an off-curve address. The odds of this are vanishingly small, but
	// callers must still observe the failure rather than use a zero key.
	ErrBumpNotFound = errors.New("unable to find a viable bump seed")

	ErrAddressMismatch = errors.New("derived address does not match the expected address")
)

var (
	programHashCtor = sha256.New
)

// CreateProgramAddress mirrors the implementation of the Solana SDK's CreateProgramAddress.
//
// ProgramAddresses are public keys that _do not_ lie on the ed25519 curve to ensure that
// there is no associated private key. In the event that the program and seed parameters
// result in a valid public key, ErrInvalidPublicKey is returned.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program Pubkey, seeds ...[]byte) (Pubkey, error) {
	if len(seeds) > MaxSeeds {
		return Pubkey{}, ErrTooManySeeds
	}

	h := programHashCtor()
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return Pubkey{}, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return Pubkey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program[:], []byte("ProgramDerivedAddress")} {
		if _, err := h.Write(v); err != nil {
			return Pubkey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	hash := h.Sum(nil)
	var pub [PubkeyLength]byte
	copy(pub[:], hash)

	// Following the Solana SDK, we want to _reject_ the generated public key
	// if it's a valid compressed EdwardsPoint.
	//
	// The edwards25519.ExtendedGroupElement (the EdwardsPoint) is internal to
	// the golang.org/x/crypto library, so we rely on an open source
	// alternative that exposes it.
	//
	// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L182-L187
	var A edwards25519.ExtendedGroupElement
	if A.FromBytes(&pub) {
		return Pubkey{}, ErrInvalidPublicKey
	}

	return pub, nil
}

// FindProgramAddress mirrors the implementation of the Solana SDK's
// FindProgramAddress. It returns the first off-curve address found by
// searching bump seeds downward from 255, along with the bump seed that
// produced it (the canonical bump).
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddress(program Pubkey, seeds ...[]byte) (Pubkey, uint8, error) {
	bumpSeed := []byte{math.MaxUint8}
	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, append(seeds, bumpSeed)...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return Pubkey{}, 0, err
		}

		bumpSeed[0]--
	}

	return Pubkey{}, 0, ErrBumpNotFound
}

// ValidateProgramAddress verifies that the expected address is the program
// address derived from the provided seeds and bump seed. Unlike
// FindProgramAddress, this performs a single derivation, so callers that
// already know the bump avoid the search entirely.
func ValidateProgramAddress(expected Pubkey, program Pubkey, bump uint8, seeds ...[]byte) error {
	derived, err := CreateProgramAddress(program, append(seeds, []byte{bump})...)
	if err != nil {
		return err
	}

	if derived != expected {
		return ErrAddressMismatch
	}

	return nil
}
