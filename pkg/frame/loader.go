package frame

import (
	"github.com/pkg/errors"

	"github.com/capstanhq/capstan/pkg/solana"
)

type loadConfig struct {
	rent solana.Rent
}

// LoadOption configures a call to Load.
type LoadOption func(*loadConfig)

// WithRent overrides the rent parameters used for rent exemption and
// reallocation checks.
func WithRent(rent solana.Rent) LoadOption {
	return func(c *loadConfig) {
		c.rent = rent
	}
}

// Load binds instruction accounts to the schema's descriptors in order and
// validates them.
//
// Loading runs in two phases. The first walks the descriptors and applies
// every check that needs only the account itself. The second resolves seed
// specs and verifies derived addresses, after which cross-account
// constraints run. Seeds that read another account's state always see a
// fully loaded account because descriptor order is load order.
//
// Accounts beyond the schema's length are kept as remaining accounts.
func Load(programID solana.Pubkey, schema *Schema, accounts []*solana.Account, opts ...LoadOption) (*Context, error) {
	cfg := loadConfig{
		rent: solana.DefaultRent(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(accounts) < len(schema.descriptors) {
		return nil, NewErrorf(CodeAccountNotEnoughAccountKeys, "expected %d accounts, got %d", len(schema.descriptors), len(accounts))
	}

	ctx := &Context{
		programID: programID,
		schema:    schema,
		accounts:  make([]*LoadedAccount, 0, len(schema.descriptors)),
		remaining: accounts[len(schema.descriptors):],
		rent:      cfg.rent,
	}

	for i, desc := range schema.descriptors {
		la, err := loadAccount(desc, accounts[i], programID, cfg.rent)
		if err != nil {
			return nil, err
		}
		ctx.accounts = append(ctx.accounts, la)
	}

	for _, la := range ctx.accounts {
		if len(la.Descriptor.seeds) == 0 {
			continue
		}

		if err := verifyDerivedAddress(ctx, la); err != nil {
			return nil, err
		}
	}

	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return ctx, nil
}

// verifyDerivedAddress re-derives a seeded account's address and records
// its bump. A declared bump is validated directly, otherwise the canonical
// bump is searched for.
func verifyDerivedAddress(ctx *Context, la *LoadedAccount) error {
	desc := la.Descriptor

	seeds, err := resolveSeeds(ctx, desc.seeds)
	if err != nil {
		return err
	}

	program := ctx.programID
	if desc.seedProgram != nil {
		program = *desc.seedProgram
	}

	if desc.bump == bumpKnown {
		err := solana.ValidateProgramAddress(la.Handle.Key, program, desc.knownBump, seeds...)
		switch {
		case err == nil:
		case errors.Is(err, solana.ErrAddressMismatch), errors.Is(err, solana.ErrInvalidPublicKey):
			return ErrConstraintSeeds.WithAccount(desc.name)
		default:
			return NewErrorf(CodePdaDerivationFailed, "could not derive program address: %v", err).WithAccount(desc.name)
		}

		ctx.bumps.put(desc.name, desc.knownBump)
		return nil
	}

	derived, bump, err := solana.FindProgramAddress(program, seeds...)
	if err != nil {
		return NewErrorf(CodePdaDerivationFailed, "could not derive program address: %v", err).WithAccount(desc.name)
	}
	if derived != la.Handle.Key {
		return ErrConstraintSeeds.WithAccount(desc.name)
	}

	ctx.bumps.put(desc.name, bump)
	return nil
}
