package solana

import (
	"bytes"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

// PubkeyLength is the byte length of an ed25519 public key.
const PubkeyLength = 32

var (
	ErrInvalidPubkeyLength = errors.New("invalid public key length")

	zeroPubkey Pubkey
)

// Pubkey is a Solana address. It is a value type so it can be compared
// directly and stored in fixed-size scratch tables.
type Pubkey [PubkeyLength]byte

// PubkeyFromBytes creates a Pubkey from a raw 32-byte slice.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != PubkeyLength {
		return Pubkey{}, errors.Wrapf(ErrInvalidPubkeyLength, "got %d bytes", len(b))
	}

	var pub Pubkey
	copy(pub[:], b)
	return pub, nil
}

// PubkeyFromBase58 decodes a base58-encoded address.
func PubkeyFromBase58(value string) (Pubkey, error) {
	decoded, err := base58.Decode(value)
	if err != nil {
		return Pubkey{}, errors.Wrap(err, "failed to decode base58 value")
	}

	return PubkeyFromBytes(decoded)
}

// MustPubkeyFromBase58 decodes a base58-encoded address, panicking on
// failure. It is intended for well-known addresses declared as package
// variables.
func MustPubkeyFromBase58(value string) Pubkey {
	pub, err := PubkeyFromBase58(value)
	if err != nil {
		panic(err)
	}

	return pub
}

// Bytes returns the key as a byte slice, suitable for use as a seed or
// for interop with crypto/ed25519.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// IsZero reports whether the key is the all-zero address.
func (p Pubkey) IsZero() bool {
	return bytes.Equal(p[:], zeroPubkey[:])
}
