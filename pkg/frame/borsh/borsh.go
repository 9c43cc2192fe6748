// Package borsh adapts the Borsh codec from github.com/gagliardetto/binary
// to the account payload interfaces consumed by pkg/frame. Payload types
// that follow Borsh layout implement frame.AccountState in one line by
// delegating to Unmarshal.
package borsh

import (
	"bytes"

	bin "github.com/gagliardetto/binary"

	"github.com/capstanhq/capstan/pkg/frame"
)

// Unmarshal decodes Borsh-encoded data into v. Callers receive payload
// bytes with the discriminator already stripped.
func Unmarshal(data []byte, v interface{}) error {
	return bin.NewBorshDecoder(data).Decode(v)
}

// Marshal encodes v as Borsh without any discriminator prefix.
func Marshal(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalAccount encodes a full account payload for the named type: the
// 8-byte account discriminator followed by the Borsh-encoded state.
func MarshalAccount(typeName string, v interface{}) ([]byte, error) {
	return marshalPrefixed(frame.AccountDiscriminator(typeName), v)
}

// MarshalInstruction encodes instruction data for the named method: the
// 8-byte method discriminator followed by the Borsh-encoded arguments. A
// nil v emits the discriminator alone, for methods without arguments.
func MarshalInstruction(method string, v interface{}) ([]byte, error) {
	return marshalPrefixed(frame.InstructionDiscriminator(method), v)
}

func marshalPrefixed(discriminator []byte, v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)

	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(discriminator, false); err != nil {
		return nil, err
	}
	if v != nil {
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
