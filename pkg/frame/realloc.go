package frame

import (
	"github.com/pkg/errors"

	"github.com/capstanhq/capstan/pkg/solana"
)

// Realloc resizes the named account's storage in place. Growth is capped
// at MaxPermittedDataIncrease per call and must be funded: the rent-exempt
// minimum rises with the size, and the difference comes from the named
// payer. Shrinking refunds the rent surplus to the payer when one is
// named, otherwise the surplus stays on the account.
//
// A payer naming the account itself moves no balance, the account must
// already hold the new minimum. Every check runs before any mutation, so
// a failed resize leaves balances and data untouched. Resizing to the
// current size is a no-op.
func (c *Context) Realloc(name string, newSize uint64, payerName string, zeroInit bool) error {
	la, ok := c.Account(name)
	if !ok {
		return ErrAccountNotFound.WithAccount(name)
	}

	if !la.Handle.IsWritable {
		return ErrReallocNotWritable.WithAccount(name)
	}
	if newSize == 0 {
		return ErrReallocZeroSize.WithAccount(name)
	}
	if newSize > solana.MaxPermittedDataLength {
		return ErrReallocSizeExceedsMax.WithAccount(name)
	}
	if la.Descriptor.resizeMax > 0 && newSize > la.Descriptor.resizeMax {
		return ErrReallocSizeExceedsMax.WithAccount(name)
	}

	oldSize := la.Handle.DataLen()
	if newSize == oldSize {
		return nil
	}
	if newSize > oldSize && newSize-oldSize > solana.MaxPermittedDataIncrease {
		return ErrReallocIncreaseTooLarge.WithAccount(name)
	}

	var payer *LoadedAccount
	if payerName != "" {
		payer, ok = c.Account(payerName)
		if !ok {
			return ErrAccountNotFound.WithAccount(payerName)
		}
	}
	aliased := payer != nil && payer.Handle.Key == la.Handle.Key

	oldMin := c.rent.MinimumBalance(oldSize)
	newMin := c.rent.MinimumBalance(newSize)

	if newSize > oldSize {
		delta := newMin - oldMin

		funded := la.Handle.Lamports
		if delta > 0 && !aliased {
			if payer == nil {
				return ErrReallocPayerRequired.WithAccount(name)
			}
			if !payer.Handle.IsSigner {
				return ErrReallocPayerNotSigner.WithAccount(payer.Name())
			}
			if payer.Handle.Lamports < delta {
				return ErrReallocInsufficientPayer.WithAccount(payer.Name())
			}

			var err error
			funded, err = solana.AddLamports(funded, delta)
			if err != nil {
				return errors.Wrap(err, "funding rent delta")
			}
		}

		if funded < newMin {
			return ErrReallocInsufficientRent.WithAccount(name)
		}

		if delta > 0 && !aliased {
			payer.Handle.Lamports -= delta
			la.Handle.Lamports = funded
		}

		la.Handle.Resize(newSize, zeroInit)
		return nil
	}

	// The refund never drops the account below the new minimum, so an
	// account that arrived underfunded keeps the shortfall visible.
	var refund uint64
	if payer != nil && !aliased && la.Handle.Lamports > newMin {
		refund = oldMin - newMin
		if max := la.Handle.Lamports - newMin; refund > max {
			refund = max
		}
	}

	if la.Handle.Lamports-refund < newMin {
		return ErrReallocInsufficientRent.WithAccount(name)
	}

	if refund > 0 {
		credited, err := solana.AddLamports(payer.Handle.Lamports, refund)
		if err != nil {
			return errors.Wrap(err, "refunding rent surplus")
		}

		payer.Handle.Lamports = credited
		la.Handle.Lamports -= refund
	}

	la.Handle.Resize(newSize, zeroInit)
	return nil
}
