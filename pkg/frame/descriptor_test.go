package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capstanhq/capstan/pkg/solana"
)

// testNote has no key fields, for exercising schema rejection paths.
type testNote struct {
	Value uint64
}

func (n *testNote) UnmarshalAccount(data []byte) error {
	return nil
}

func TestNewSchemaStructure(t *testing.T) {
	schema, err := NewSchema(
		NewDescriptor("authority", KindSigner),
		NewDescriptor("vault", KindAccount, Mut(), Typed("Vault", newTestVault)),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, schema.Len())

	desc, ok := schema.Descriptor("vault")
	require.True(t, ok)
	assert.Equal(t, "vault", desc.Name())
	assert.Equal(t, KindAccount, desc.Kind())

	_, ok = schema.Descriptor("unknown")
	assert.False(t, ok)

	_, err = NewSchema(
		NewDescriptor("authority", KindSigner),
		NewDescriptor("authority", KindSigner),
	)
	require.ErrorIs(t, err, ErrSchemaDuplicateAccountName)

	_, err = NewSchema(NewDescriptor("", KindSigner))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(nil)
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	oversized := make([]*AccountDescriptor, MaxSchemaAccounts+1)
	for i := range oversized {
		oversized[i] = NewDescriptor(string(rune('a'+i)), KindUnchecked)
	}
	_, err = NewSchema(oversized...)
	require.ErrorIs(t, err, ErrSchemaTooManyAccounts)
}

func TestNewSchemaTypedRules(t *testing.T) {
	_, err := NewSchema(NewDescriptor("vault", KindAccount))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Discriminator([]byte{1, 2, 3}),
	))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("wallet", KindSystemAccount, Typed("Vault", newTestVault)))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("wallet", KindSystemAccount, Init()))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)
}

func TestNewSchemaSeedRules(t *testing.T) {
	_, err := NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		KnownBump(255),
	))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		SeedsProgram(solana.SystemProgramID),
	))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Seeds(Lit(make([]byte, solana.MaxSeedLength+1))),
	))
	require.ErrorIs(t, err, ErrSeedTooLong)

	// The bump occupies a derivation slot, so one fewer declared seed fits
	// than the host's maximum.
	full := make([]SeedSpec, solana.MaxSeeds)
	for i := range full {
		full[i] = Lit([]byte{byte(i)})
	}
	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Seeds(full...),
	))
	require.ErrorIs(t, err, ErrTooManySeeds)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Seeds(full[:solana.MaxSeeds-1]...),
	))
	require.NoError(t, err)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Seeds(AccountRef("vault")),
	))
	require.ErrorIs(t, err, ErrSchemaSeedCycle)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Seeds(AccountRef("missing")),
	))
	require.ErrorIs(t, err, ErrSchemaUnknownReference)

	_, err = NewSchema(
		NewDescriptor("pending", KindAccount, Init(), Typed("Vault", newTestVault)),
		NewDescriptor("vault", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(FieldRef("pending", "authority")),
		),
	)
	require.ErrorIs(t, err, ErrSchemaUnknownReference)

	_, err = NewSchema(
		NewDescriptor("wallet", KindSystemAccount),
		NewDescriptor("vault", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(FieldRef("wallet", "authority")),
		),
	)
	require.ErrorIs(t, err, ErrSchemaUnknownReference)
}

func TestNewSchemaBumpRefOrdering(t *testing.T) {
	// A bump reference reads the bump table, which fills in declaration
	// order, so only strictly earlier seeded accounts are usable.
	_, err := NewSchema(
		NewDescriptor("authority", KindSigner),
		NewDescriptor("vault", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(LitString("vault"), AccountRef("authority")),
		),
		NewDescriptor("receipt", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(LitString("receipt"), BumpRef("vault")),
		),
	)
	require.NoError(t, err)

	_, err = NewSchema(
		NewDescriptor("receipt", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(LitString("receipt"), BumpRef("vault")),
		),
		NewDescriptor("vault", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(LitString("vault")),
		),
	)
	require.ErrorIs(t, err, ErrSchemaSeedCycle)

	_, err = NewSchema(
		NewDescriptor("vault", KindAccount, Typed("Vault", newTestVault)),
		NewDescriptor("receipt", KindAccount,
			Typed("Vault", newTestVault),
			Seeds(LitString("receipt"), BumpRef("vault")),
		),
	)
	require.ErrorIs(t, err, ErrSchemaSeedCycle)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Seeds(LitString("vault"), BumpRef("vault")),
	))
	require.ErrorIs(t, err, ErrSchemaSeedCycle)
}

func TestNewSchemaCloseResizeRules(t *testing.T) {
	_, err := NewSchema(
		NewDescriptor("destination", KindUnchecked, Mut()),
		NewDescriptor("vault", KindAccount,
			Mut(),
			Typed("Vault", newTestVault),
			CloseTo("destination"),
			Resizable(1024),
		),
	)
	require.NoError(t, err)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Mut(),
		Typed("Vault", newTestVault),
		CloseTo("vault"),
	))
	require.ErrorIs(t, err, ErrCloseToSelf)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Mut(),
		Typed("Vault", newTestVault),
		CloseTo("missing"),
	))
	require.ErrorIs(t, err, ErrSchemaUnknownReference)

	_, err = NewSchema(
		NewDescriptor("destination", KindUnchecked, Mut()),
		NewDescriptor("vault", KindAccount,
			Typed("Vault", newTestVault),
			CloseTo("destination"),
		),
	)
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Mut(),
		Typed("Vault", newTestVault),
		Resizable(solana.MaxPermittedDataLength+1),
	))
	require.ErrorIs(t, err, ErrReallocSizeExceedsMax)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		Resizable(1024),
	))
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)
}

func TestNewSchemaHasOneRules(t *testing.T) {
	_, err := NewSchema(
		NewDescriptor("authority", KindSigner),
		NewDescriptor("vault", KindAccount,
			Typed("Vault", newTestVault),
			HasOne("authority", "authority"),
		),
	)
	require.NoError(t, err)

	_, err = NewSchema(
		NewDescriptor("authority", KindSigner),
		NewDescriptor("wallet", KindSystemAccount, HasOne("authority", "authority")),
	)
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)

	_, err = NewSchema(NewDescriptor("vault", KindAccount,
		Typed("Vault", newTestVault),
		HasOne("authority", "missing"),
	))
	require.ErrorIs(t, err, ErrSchemaUnknownReference)

	_, err = NewSchema(
		NewDescriptor("authority", KindSigner),
		NewDescriptor("note", KindAccount,
			Typed("Note", func() AccountState { return &testNote{} }),
			HasOne("authority", "authority"),
		),
	)
	require.ErrorIs(t, err, ErrSchemaInvalidDescriptor)
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustSchema(
			NewDescriptor("a", KindSigner),
			NewDescriptor("a", KindSigner),
		)
	})

	assert.NotPanics(t, func() {
		MustSchema(NewDescriptor("a", KindSigner))
	})
}
