package frame

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/capstanhq/capstan/pkg/solana"
)

func generateKey(t *testing.T) solana.Pubkey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	key, err := solana.PubkeyFromBytes(pub)
	require.NoError(t, err)

	return key
}

const testVaultPayloadSize = 32 + 8

// testVault deserializes with manual offset arithmetic, the shape
// hand-written account codecs take.
type testVault struct {
	Authority solana.Pubkey
	Balance   uint64
}

func newTestVault() AccountState {
	return &testVault{}
}

func (v *testVault) UnmarshalAccount(data []byte) error {
	if len(data) != testVaultPayloadSize {
		return errors.Errorf("invalid vault payload size: %d", len(data))
	}

	var offset int
	copy(v.Authority[:], data[offset:offset+32])
	offset += 32
	v.Balance = binary.LittleEndian.Uint64(data[offset:])

	return nil
}

func (v *testVault) KeyField(name string) (solana.Pubkey, bool) {
	switch name {
	case "authority":
		return v.Authority, true
	default:
		return solana.Pubkey{}, false
	}
}

// vaultData builds a full vault account payload, discriminator included.
func vaultData(authority solana.Pubkey, balance uint64) []byte {
	data := make([]byte, DiscriminatorLength+testVaultPayloadSize)
	copy(data, AccountDiscriminator("Vault"))
	copy(data[DiscriminatorLength:], authority[:])
	binary.LittleEndian.PutUint64(data[DiscriminatorLength+32:], balance)

	return data
}

// vaultAccount builds an initialized, rent-exempt vault account owned by
// the given program.
func vaultAccount(key, owner, authority solana.Pubkey, balance uint64) *solana.Account {
	data := vaultData(authority, balance)

	return &solana.Account{
		Key:        key,
		Lamports:   solana.DefaultRent().MinimumBalance(uint64(len(data))),
		Data:       data,
		Owner:      owner,
		IsWritable: true,
	}
}

// signerWallet builds a writable system-owned account that signed the
// instruction.
func signerWallet(key solana.Pubkey, lamports uint64) *solana.Account {
	return &solana.Account{
		Key:        key,
		Lamports:   lamports,
		Owner:      solana.SystemProgramID,
		IsSigner:   true,
		IsWritable: true,
	}
}
