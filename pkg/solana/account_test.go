package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountResize(t *testing.T) {
	account := &Account{
		Key:  generateKey(t),
		Data: []byte{1, 2, 3, 4},
	}

	account.Resize(8, false)
	assert.EqualValues(t, 8, account.DataLen())
	assert.Equal(t, []byte{1, 2, 3, 4, 0, 0, 0, 0}, account.Data)

	// Shrinking then growing within capacity re-exposes the old bytes.
	account.Data = make([]byte, 4, 16)
	copy(account.Data, []byte{1, 2, 3, 4})
	account.Resize(8, false)
	account.Data[7] = 0xff
	account.Resize(4, false)
	account.Resize(8, false)
	assert.Equal(t, byte(0xff), account.Data[7])

	// Unless the caller asks for the new region to be zeroed.
	account.Resize(4, false)
	account.Resize(8, true)
	assert.Equal(t, []byte{1, 2, 3, 4, 0, 0, 0, 0}, account.Data)
}

func TestAccountZeroData(t *testing.T) {
	account := &Account{
		Data: []byte{1, 2, 3, 4},
	}

	account.ZeroData()
	assert.Equal(t, []byte{0, 0, 0, 0}, account.Data)
	assert.EqualValues(t, 4, account.DataLen())
}

func TestAccountClone(t *testing.T) {
	account := &Account{
		Key:        generateKey(t),
		Lamports:   890880,
		Data:       []byte{1, 2, 3},
		Owner:      generateKey(t),
		IsSigner:   true,
		IsWritable: true,
	}

	clone := account.Clone()
	assert.Equal(t, account, clone)

	clone.Data[0] = 0xff
	assert.Equal(t, byte(1), account.Data[0])

	var nilAccount *Account
	assert.Nil(t, nilAccount.Clone())
}
