package frame

import (
	"github.com/capstanhq/capstan/pkg/solana"
)

// validateContext runs the checks that need every account loaded. The
// order is fixed: the duplicate-mutable scan, has-one relations, custom
// predicates, then close and resize readiness.
func validateContext(ctx *Context) error {
	if err := checkDuplicateMutable(ctx); err != nil {
		return err
	}
	if err := checkHasOne(ctx); err != nil {
		return err
	}
	if err := checkCustom(ctx); err != nil {
		return err
	}

	return checkReadiness(ctx)
}

// checkDuplicateMutable rejects two live mutable views of one account,
// which would let the second write clobber the first. Accounts being
// created this call cannot hold stale state yet, so init descriptors are
// exempt alongside explicitly allowed duplicates.
func checkDuplicateMutable(ctx *Context) error {
	var seen [MaxSchemaAccounts]solana.Pubkey
	n := 0

	for _, la := range ctx.accounts {
		desc := la.Descriptor
		if !desc.mut || desc.allowDup || desc.init != initNone {
			continue
		}

		key := la.Handle.Key
		for i := 0; i < n; i++ {
			if seen[i] == key {
				return ErrConstraintDuplicateMutableAccount.WithAccount(desc.name)
			}
		}

		seen[n] = key
		n++
	}

	return nil
}

// checkHasOne compares declared key fields against sibling addresses.
// Accounts pending initialization are skipped, the handler is about to
// write the very fields the relation binds.
func checkHasOne(ctx *Context) error {
	for _, la := range ctx.accounts {
		desc := la.Descriptor
		if len(desc.hasOne) == 0 || !la.Initialized {
			continue
		}

		// Schema construction verified the state type implements KeyFields.
		fields := la.State.(KeyFields)

		for _, h := range desc.hasOne {
			key, ok := fields.KeyField(h.field)
			if !ok {
				return NewErrorf(CodeFieldNotFound, "field %q not found", h.field).WithAccount(desc.name)
			}

			target, ok := ctx.Account(h.target)
			if !ok {
				return ErrAccountNotFound.WithAccount(h.target)
			}

			if key != target.Handle.Key {
				return ErrConstraintHasOne.WithAccount(desc.name)
			}
		}
	}

	return nil
}

func checkCustom(ctx *Context) error {
	for _, la := range ctx.accounts {
		for _, c := range la.Descriptor.constraints {
			if c.check(ctx, la) {
				continue
			}

			if c.code == CodeConstraintRaw {
				return ErrConstraintRaw.WithAccount(la.Descriptor.name)
			}
			return NewErrorf(c.code, "a custom constraint was violated").WithAccount(la.Descriptor.name)
		}
	}

	return nil
}

// checkReadiness verifies close and resize declarations are satisfiable
// before any handler runs. The operations themselves stay explicit, the
// handler sequences their side effects.
func checkReadiness(ctx *Context) error {
	for _, la := range ctx.accounts {
		desc := la.Descriptor

		if desc.closeTo != "" {
			dest, ok := ctx.Account(desc.closeTo)
			if !ok {
				return ErrAccountNotFound.WithAccount(desc.closeTo)
			}
			if dest.Handle.Key == la.Handle.Key {
				return ErrCloseToSelf.WithAccount(desc.name)
			}
			if !dest.Handle.IsWritable {
				return ErrCloseDestinationNotWritable.WithAccount(desc.closeTo)
			}
		}

		if desc.resizeMax > 0 && la.Handle.DataLen() > desc.resizeMax {
			return ErrReallocSizeExceedsMax.WithAccount(desc.name)
		}
	}

	return nil
}
