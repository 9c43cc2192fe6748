package frame

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBumpTable(t *testing.T) {
	var table BumpTable

	_, ok := table.Get("vault")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())

	table.put("vault", 255)
	table.put("escrow", 254)

	bump, ok := table.Get("vault")
	require.True(t, ok)
	assert.EqualValues(t, 255, bump)

	bump, ok = table.Get("escrow")
	require.True(t, ok)
	assert.EqualValues(t, 254, bump)

	_, ok = table.Get("other")
	assert.False(t, ok)
	assert.Equal(t, 2, table.Len())
}

func TestBumpTable_WriteOnce(t *testing.T) {
	var table BumpTable
	table.put("vault", 255)

	assert.Panics(t, func() {
		table.put("vault", 254)
	})
}

func TestBumpTable_Capacity(t *testing.T) {
	var table BumpTable
	for i := 0; i < MaxSchemaAccounts; i++ {
		table.put(fmt.Sprintf("account%d", i), uint8(i))
	}
	assert.Equal(t, MaxSchemaAccounts, table.Len())

	assert.Panics(t, func() {
		table.put("overflow", 0)
	})
}
