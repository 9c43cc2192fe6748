package frame

import (
	"bytes"

	"github.com/capstanhq/capstan/pkg/solana"
)

// LoadedAccount pairs an instruction account with the descriptor it
// satisfied and, for typed accounts, its deserialized state.
type LoadedAccount struct {
	Descriptor *AccountDescriptor
	Handle     *solana.Account

	// State is the deserialized payload of a typed account, nil for
	// untyped kinds and for accounts pending initialization.
	State AccountState

	// Initialized reports whether the payload existed and deserialized.
	// It is false exactly when an Init or InitIfNeeded account is waiting
	// for the handler to create it.
	Initialized bool
}

// Name returns the account's declared name.
func (a *LoadedAccount) Name() string {
	return a.Descriptor.name
}

// Key returns the account's address.
func (a *LoadedAccount) Key() solana.Pubkey {
	return a.Handle.Key
}

// loadAccount applies every structural check the descriptor declares.
// Checks run flags first, then kind-specific structure, then rent, and the
// first violation aborts.
func loadAccount(desc *AccountDescriptor, handle *solana.Account, programID solana.Pubkey, rent solana.Rent) (*LoadedAccount, error) {
	la := &LoadedAccount{
		Descriptor: desc,
		Handle:     handle,
	}

	if desc.signer && !handle.IsSigner {
		if desc.kind == KindSigner {
			return nil, ErrAccountNotSigner.WithAccount(desc.name)
		}
		return nil, ErrConstraintSigner.WithAccount(desc.name)
	}
	if desc.mut && !handle.IsWritable {
		return nil, ErrConstraintMut.WithAccount(desc.name)
	}
	if desc.address != nil && *desc.address != handle.Key {
		return nil, ErrConstraintAddress.WithAccount(desc.name)
	}
	if desc.executable && !handle.Executable {
		return nil, ErrConstraintExecutable.WithAccount(desc.name)
	}

	switch desc.kind {
	case KindSystemAccount:
		if handle.Owner != solana.SystemProgramID {
			return nil, ErrAccountNotSystemOwned.WithAccount(desc.name)
		}
	case KindAccount:
		if err := loadTyped(la, programID); err != nil {
			return nil, err
		}
	}

	if desc.owner != nil && desc.kind != KindAccount {
		if handle.Owner != *desc.owner {
			return nil, ErrConstraintOwner.WithAccount(desc.name)
		}
	}

	// Accounts pending initialization are funded by their handler, so the
	// rent requirement only applies once a payload exists.
	if desc.rentExempt && (desc.init == initNone || la.Initialized) {
		if !rent.IsExempt(handle.Lamports, handle.DataLen()) {
			return nil, ErrConstraintRentExempt.WithAccount(desc.name)
		}
	}

	return la, nil
}

func loadTyped(la *LoadedAccount, programID solana.Pubkey) error {
	desc := la.Descriptor
	handle := la.Handle

	uninitialized := handle.Owner == solana.SystemProgramID || len(handle.Data) == 0

	if desc.init == initAlways {
		if !uninitialized {
			return ErrAccountDiscriminatorAlreadySet.WithAccount(desc.name)
		}
		return prepareInit(desc, handle)
	}
	if desc.init == initIfNeeded && uninitialized {
		return prepareInit(desc, handle)
	}

	expectedOwner := programID
	if desc.owner != nil {
		expectedOwner = *desc.owner
	}
	if handle.Owner != expectedOwner {
		return ErrAccountOwnedByWrongProgram.WithAccount(desc.name)
	}

	if len(handle.Data) < DiscriminatorLength {
		return ErrAccountDiscriminatorNotFound.WithAccount(desc.name)
	}
	if !bytes.Equal(handle.Data[:DiscriminatorLength], desc.discriminator) {
		return ErrAccountDiscriminatorMismatch.WithAccount(desc.name)
	}

	if desc.space != nil && handle.DataLen() != *desc.space {
		return ErrConstraintSpace.WithAccount(desc.name)
	}

	state := desc.newState()
	if err := state.UnmarshalAccount(handle.Data[DiscriminatorLength:]); err != nil {
		return NewErrorf(CodeAccountDidNotDeserialize, "failed to deserialize the account: %v", err).WithAccount(desc.name)
	}

	la.State = state
	la.Initialized = true

	return nil
}

// prepareInit leaves the account for the handler to create. Keypair
// accounts must authorize their own creation; derived accounts cannot
// sign, their seeds authorize them instead.
func prepareInit(desc *AccountDescriptor, handle *solana.Account) error {
	if len(desc.seeds) == 0 && !handle.IsSigner {
		return ErrAccountNotSigner.WithAccount(desc.name)
	}

	return nil
}
