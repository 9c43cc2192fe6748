package frame

import (
	"fmt"

	"github.com/capstanhq/capstan/pkg/solana"
)

// Context is the validated view of an instruction's accounts: every
// descriptor resolved to a loaded account, the bumps recorded during
// derivation, and any accounts passed beyond the schema. A Context is only
// ever produced by Load, so handlers can rely on every declared constraint
// having held.
type Context struct {
	programID solana.Pubkey
	schema    *Schema
	accounts  []*LoadedAccount
	remaining []*solana.Account
	bumps     BumpTable
	rent      solana.Rent
}

// ProgramID returns the program the accounts were loaded for.
func (c *Context) ProgramID() solana.Pubkey {
	return c.programID
}

// Account returns the named loaded account.
func (c *Context) Account(name string) (*LoadedAccount, bool) {
	for _, la := range c.accounts {
		if la.Descriptor.name == name {
			return la, true
		}
	}

	return nil, false
}

// MustAccount returns the named loaded account, panicking if the name is
// not in the schema. Handlers own their schemas, so a missing name is a
// programming error.
func (c *Context) MustAccount(name string) *LoadedAccount {
	la, ok := c.Account(name)
	if !ok {
		panic(fmt.Sprintf("account %q not in schema", name))
	}

	return la
}

// Bump returns the bump seed recorded for the named account during
// derivation.
func (c *Context) Bump(name string) (uint8, bool) {
	return c.bumps.Get(name)
}

// Remaining returns the accounts passed beyond the schema, in instruction
// order. They carry no constraints; handlers validate them as needed.
func (c *Context) Remaining() []*solana.Account {
	return c.remaining
}

// Len returns the number of schema accounts in the context.
func (c *Context) Len() int {
	return len(c.accounts)
}
