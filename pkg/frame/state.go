package frame

import (
	"crypto/sha256"

	"github.com/capstanhq/capstan/pkg/solana"
)

// DiscriminatorLength is the length of the 8-byte prefix identifying an
// account's type or an instruction's method.
const DiscriminatorLength = 8

// AccountState is the deserialized payload of a typed account. The engine
// strips the discriminator before calling UnmarshalAccount, so
// implementations only see their own fields.
type AccountState interface {
	UnmarshalAccount(data []byte) error
}

// KeyFields is implemented by account states that expose public-key fields
// by name. Seed resolution and has-one constraints read cross-account
// dependencies through it.
type KeyFields interface {
	KeyField(name string) (solana.Pubkey, bool)
}

// AccountDiscriminator returns the 8-byte discriminator for the named
// account type, computed the way Anchor computes it so accounts written by
// Anchor programs remain readable.
//
// Reference: https://github.com/coral-xyz/anchor/blob/v0.30.1/lang/attribute/account/src/lib.rs#L100-L106
func AccountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	return sum[:DiscriminatorLength]
}

// InstructionDiscriminator returns the 8-byte discriminator routing
// instruction data to the named method, matching Anchor's global dispatch
// namespace.
func InstructionDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:DiscriminatorLength]
}
