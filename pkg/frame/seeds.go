package frame

type SeedKind uint8

const (
	SeedLiteral SeedKind = iota
	SeedAccount
	SeedField
	SeedBump
)

func (k SeedKind) String() string {
	switch k {
	case SeedLiteral:
		return "literal"
	case SeedAccount:
		return "account"
	case SeedField:
		return "field"
	case SeedBump:
		return "bump"
	}

	return "unknown"
}

// SeedSpec is a single component of a program address derivation. Literal
// seeds carry their bytes directly; the reference kinds are resolved against
// the other accounts of the same instruction at load time.
type SeedSpec struct {
	kind    SeedKind
	literal []byte
	account string
	field   string
}

// Lit declares a literal seed.
func Lit(value []byte) SeedSpec {
	return SeedSpec{
		kind:    SeedLiteral,
		literal: value,
	}
}

// LitString declares a literal seed from a string, the common case for
// fixed address namespaces like "vault" or "escrow".
func LitString(value string) SeedSpec {
	return Lit([]byte(value))
}

// AccountRef declares a seed that resolves to the address of the named
// account in the same schema.
func AccountRef(name string) SeedSpec {
	return SeedSpec{
		kind:    SeedAccount,
		account: name,
	}
}

// FieldRef declares a seed that resolves to a public-key field read from
// the deserialized state of the named account. The state must implement
// KeyFields.
func FieldRef(name, field string) SeedSpec {
	return SeedSpec{
		kind:    SeedField,
		account: name,
		field:   field,
	}
}

// BumpRef declares a seed that resolves to the bump recorded for the named
// account. The named account must appear earlier in the schema and be
// derived from seeds itself, otherwise its bump is not yet known when this
// seed resolves.
func BumpRef(name string) SeedSpec {
	return SeedSpec{
		kind:    SeedBump,
		account: name,
	}
}

func (s SeedSpec) Kind() SeedKind {
	return s.kind
}

// resolve produces the seed bytes for one derivation component. Reference
// seeds read from accounts that finished structural loading, so resolution
// order only matters for bump references.
func (s SeedSpec) resolve(ctx *Context) ([]byte, error) {
	switch s.kind {
	case SeedLiteral:
		return s.literal, nil

	case SeedAccount:
		target, ok := ctx.Account(s.account)
		if !ok {
			return nil, ErrAccountNotFound.WithAccount(s.account)
		}
		return target.Handle.Key.Bytes(), nil

	case SeedField:
		target, ok := ctx.Account(s.account)
		if !ok {
			return nil, ErrAccountNotFound.WithAccount(s.account)
		}

		fields, ok := target.State.(KeyFields)
		if !ok {
			return nil, NewErrorf(CodeFieldNotFound, "account state does not expose key fields").WithAccount(s.account)
		}

		key, ok := fields.KeyField(s.field)
		if !ok {
			return nil, NewErrorf(CodeFieldNotFound, "field %q not found", s.field).WithAccount(s.account)
		}
		return key.Bytes(), nil

	case SeedBump:
		bump, ok := ctx.Bump(s.account)
		if !ok {
			return nil, ErrBumpNotFound.WithAccount(s.account)
		}
		return []byte{bump}, nil
	}

	return nil, NewErrorf(CodePdaDerivationFailed, "unknown seed kind %d", s.kind)
}

// resolveSeeds materializes every seed of a descriptor, in order.
func resolveSeeds(ctx *Context, specs []SeedSpec) ([][]byte, error) {
	seeds := make([][]byte, 0, len(specs))
	for _, spec := range specs {
		seed, err := spec.resolve(ctx)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, seed)
	}

	return seeds, nil
}
