package solana

// accountStorageOverhead is the number of bytes charged on top of the data
// length to account for the cost of storing the account metadata.
//
// Source: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/rent.rs#L26
const accountStorageOverhead = 128

// Rent holds the rent sysvar parameters used to compute rent-exempt
// minimum balances.
type Rent struct {
	// LamportsPerByteYear is the rental rate in lamports per byte-year.
	LamportsPerByteYear uint64

	// ExemptionThreshold is the amount of time, in years, a balance must
	// cover to be exempt from rent collection.
	ExemptionThreshold float64

	// BurnPercent is the percentage of collected rent that is burned.
	BurnPercent uint8
}

// DefaultRent returns the cluster default rent parameters.
//
// Source: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/rent.rs#L35-L41
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
		BurnPercent:         50,
	}
}

// MinimumBalance returns the minimum balance for an account of the given
// data length to be exempt from rent collection.
func (r Rent) MinimumBalance(dataLen uint64) uint64 {
	return uint64(float64((accountStorageOverhead+dataLen)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt reports whether the balance is sufficient for an account of the
// given data length to be exempt from rent collection.
func (r Rent) IsExempt(lamports uint64, dataLen uint64) bool {
	return lamports >= r.MinimumBalance(dataLen)
}
