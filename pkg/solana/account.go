package solana

const (
	// MaxPermittedDataLength is the maximum length of account data.
	//
	// Source: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/system_instruction.rs#L82
	MaxPermittedDataLength = 10 * 1024 * 1024

	// MaxPermittedDataIncrease is the maximum number of bytes account data
	// may grow by within a single realloc.
	//
	// Source: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/entrypoint.rs#L53
	MaxPermittedDataIncrease = 10 * 1024
)

// Account is a transaction-scoped view of an on-chain account, as handed to
// a program by its host. The flags reflect how the account was referenced in
// the instruction, not intrinsic properties of the account itself.
type Account struct {
	Key        Pubkey
	Lamports   uint64
	Data       []byte
	Owner      Pubkey
	IsSigner   bool
	IsWritable bool
	Executable bool
	RentEpoch  uint64
}

// DataLen returns the length of the account data.
func (a *Account) DataLen() uint64 {
	return uint64(len(a.Data))
}

// Resize sets the account data to the requested length. Growth within the
// existing capacity re-exposes whatever bytes were previously there unless
// zeroInit is set, mirroring on-chain realloc semantics.
func (a *Account) Resize(size uint64, zeroInit bool) {
	oldLen := uint64(len(a.Data))

	if size <= uint64(cap(a.Data)) {
		a.Data = a.Data[:size]
		if zeroInit && size > oldLen {
			for i := oldLen; i < size; i++ {
				a.Data[i] = 0
			}
		}
		return
	}

	data := make([]byte, size)
	copy(data, a.Data)
	a.Data = data
}

// ZeroData clears every byte of the account data, including any
// discriminator prefix, without changing its length.
func (a *Account) ZeroData() {
	for i := range a.Data {
		a.Data[i] = 0
	}
}

// Clone creates a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}

	clone := &Account{
		Key:        a.Key,
		Lamports:   a.Lamports,
		Owner:      a.Owner,
		IsSigner:   a.IsSigner,
		IsWritable: a.IsWritable,
		Executable: a.Executable,
		RentEpoch:  a.RentEpoch,
	}
	if a.Data != nil {
		clone.Data = make([]byte, len(a.Data))
		copy(clone.Data, a.Data)
	}

	return clone
}
