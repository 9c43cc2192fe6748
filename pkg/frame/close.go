package frame

import (
	"github.com/pkg/errors"

	"github.com/capstanhq/capstan/pkg/solana"
)

// Close moves the named account's entire balance to the destination and
// zeroes its storage, discriminator included. The host reclaims the
// drained account at the end of the transaction, so a zeroed payload keeps
// a same-transaction revival from masquerading as initialized.
//
// Handlers call Close explicitly. Loading only verifies a declared close
// destination is usable.
func (c *Context) Close(name, destName string) error {
	la, ok := c.Account(name)
	if !ok {
		return ErrAccountNotFound.WithAccount(name)
	}
	dest, ok := c.Account(destName)
	if !ok {
		return ErrAccountNotFound.WithAccount(destName)
	}

	if la.Handle.Key == dest.Handle.Key {
		return ErrCloseToSelf.WithAccount(name)
	}
	if !la.Handle.IsWritable {
		return ErrCloseAccountNotWritable.WithAccount(name)
	}
	if !dest.Handle.IsWritable {
		return ErrCloseDestinationNotWritable.WithAccount(destName)
	}

	credited, err := solana.AddLamports(dest.Handle.Lamports, la.Handle.Lamports)
	if err != nil {
		return errors.Wrap(err, "crediting close destination")
	}

	dest.Handle.Lamports = credited
	la.Handle.Lamports = 0
	la.Handle.ZeroData()
	la.State = nil
	la.Initialized = false

	return nil
}
