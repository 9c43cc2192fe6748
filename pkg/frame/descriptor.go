package frame

import (
	"github.com/capstanhq/capstan/pkg/solana"
)

// AccountKind determines the structural checks an account must pass during
// loading. Constraint options refine a kind; they never replace its checks.
type AccountKind uint8

const (
	// KindUnchecked performs no structural checks beyond the options
	// declared on the descriptor.
	KindUnchecked AccountKind = iota

	// KindAccount is a program-owned account with an 8-byte discriminator
	// followed by a typed payload.
	KindAccount

	// KindSigner must have signed the instruction.
	KindSigner

	// KindSystemAccount is owned by the system program.
	KindSystemAccount

	// KindProgram is an executable account.
	KindProgram
)

func (k AccountKind) String() string {
	switch k {
	case KindUnchecked:
		return "unchecked"
	case KindAccount:
		return "account"
	case KindSigner:
		return "signer"
	case KindSystemAccount:
		return "system_account"
	case KindProgram:
		return "program"
	}

	return "unknown"
}

type initMode uint8

const (
	initNone initMode = iota
	initAlways
	initIfNeeded
)

type bumpMode uint8

const (
	bumpAuto bumpMode = iota
	bumpKnown
)

type hasOneConstraint struct {
	field  string
	target string
}

// ConstraintFunc is a custom predicate evaluated against the loaded
// context after every structural and relational check has passed. A false
// result fails the load.
type ConstraintFunc func(ctx *Context, account *LoadedAccount) bool

type customConstraint struct {
	check ConstraintFunc
	code  ErrorCode
}

// AccountDescriptor declares one account an instruction expects: its
// position (by declaration order), kind, and the constraints it must
// satisfy. Descriptors are built once at program construction and shared
// across instructions.
type AccountDescriptor struct {
	name string
	kind AccountKind

	mut        bool
	signer     bool
	executable bool
	rentExempt bool
	allowDup   bool

	owner   *solana.Pubkey
	address *solana.Pubkey

	seeds       []SeedSpec
	seedProgram *solana.Pubkey
	bump        bumpMode
	knownBump   uint8

	init initMode

	space         *uint64
	discriminator []byte
	newState      func() AccountState

	hasOne      []hasOneConstraint
	constraints []customConstraint

	closeTo   string
	resizeMax uint64
}

// NewDescriptor declares an account with the given name and kind. Options
// are applied in order; later options override earlier ones where they
// touch the same setting.
func NewDescriptor(name string, kind AccountKind, opts ...DescriptorOption) *AccountDescriptor {
	d := &AccountDescriptor{
		name: name,
		kind: kind,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Name returns the account's declared name.
func (d *AccountDescriptor) Name() string {
	return d.name
}

// Kind returns the account's declared kind.
func (d *AccountDescriptor) Kind() AccountKind {
	return d.kind
}

// DescriptorOption configures an AccountDescriptor.
type DescriptorOption func(*AccountDescriptor)

// Mut requires the account be writable.
func Mut() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.mut = true
	}
}

// Signer requires the account have signed the instruction. KindSigner
// implies this.
func Signer() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.signer = true
	}
}

// Owner requires the account be owned by the given program. Typed accounts
// default to the loading program; other kinds have no default.
func Owner(program solana.Pubkey) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.owner = &program
	}
}

// Address pins the account to a known address.
func Address(address solana.Pubkey) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.address = &address
	}
}

// Executable requires the account be executable. KindProgram implies this.
func Executable() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.executable = true
	}
}

// RentExempt requires the account balance cover the rent-exempt minimum
// for its data length.
func RentExempt() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.rentExempt = true
	}
}

// AllowDuplicate exempts the account from the duplicate-mutable-account
// check, for instructions that legitimately pass the same account twice.
func AllowDuplicate() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.allowDup = true
	}
}

// Seeds requires the account address be the program address derived from
// the given seeds. The canonical bump is searched for automatically unless
// KnownBump is also declared. The bump in effect is recorded in the
// context's bump table either way.
func Seeds(specs ...SeedSpec) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.seeds = specs
	}
}

// SeedsProgram derives the account's address against the given program
// instead of the loading program, for addresses owned by foreign programs.
func SeedsProgram(program solana.Pubkey) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.seedProgram = &program
	}
}

// KnownBump skips the canonical bump search and validates the address with
// a single derivation using the given bump, the cheap path for bumps
// persisted in account state.
func KnownBump(bump uint8) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.bump = bumpKnown
		d.knownBump = bump
	}
}

// Typed declares the account's payload type. The discriminator is derived
// from the type name unless Discriminator overrides it, and newState is
// invoked once per load to produce the value the payload deserializes
// into.
func Typed(typeName string, newState func() AccountState) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.discriminator = AccountDiscriminator(typeName)
		d.newState = newState
	}
}

// Discriminator overrides the 8-byte discriminator expected on the
// account, for account types whose discriminator is not derived from the
// type name.
func Discriminator(discriminator []byte) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.discriminator = discriminator
	}
}

// Init declares the handler will create this account. Structural checks
// that assume an existing payload (owner, discriminator, deserialization,
// rent) are skipped, the account must be uninitialized, and it must be
// writable. Non-derived accounts must sign their own creation.
func Init() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.init = initAlways
	}
}

// InitIfNeeded declares the handler may create this account if it does not
// exist yet. Uninitialized accounts take the Init path; initialized ones
// are loaded normally.
func InitIfNeeded() DescriptorOption {
	return func(d *AccountDescriptor) {
		d.init = initIfNeeded
	}
}

// Space requires the account data be exactly the given length.
func Space(size uint64) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.space = &size
	}
}

// HasOne requires the named public-key field of this account's payload
// equal the address of the target account in the same schema.
func HasOne(field, target string) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.hasOne = append(d.hasOne, hasOneConstraint{
			field:  field,
			target: target,
		})
	}
}

// CloseTo declares the account is expected to be closed into the target
// account, enabling close readiness checks at load time. The close itself
// happens when the handler calls Context.Close.
func CloseTo(target string) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.closeTo = target
	}
}

// Resizable declares the account data may be resized up to maxSize bytes,
// enabling resize readiness checks at load time. The resize itself happens
// when the handler calls Context.Realloc.
func Resizable(maxSize uint64) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.resizeMax = maxSize
	}
}

// Constraint attaches a custom predicate failing with ConstraintRaw.
func Constraint(check ConstraintFunc) DescriptorOption {
	return ConstraintWithCode(check, CodeConstraintRaw)
}

// ConstraintWithCode attaches a custom predicate failing with the given
// code. Program-defined codes belong at CustomErrorOffset and above.
func ConstraintWithCode(check ConstraintFunc, code ErrorCode) DescriptorOption {
	return func(d *AccountDescriptor) {
		d.constraints = append(d.constraints, customConstraint{
			check: check,
			code:  code,
		})
	}
}

// Schema is an instruction's validated account list in declaration order.
type Schema struct {
	descriptors []*AccountDescriptor
}

// NewSchema validates the descriptor list as a whole: name uniqueness,
// reference resolution, seed bounds, and per-kind requirements. Invalid
// schemas are programming errors, caught here once at construction rather
// than on every load.
func NewSchema(descriptors ...*AccountDescriptor) (*Schema, error) {
	if len(descriptors) > MaxSchemaAccounts {
		return nil, ErrSchemaTooManyAccounts
	}

	s := &Schema{descriptors: descriptors}

	for i, d := range descriptors {
		if d == nil || d.name == "" {
			return nil, NewErrorf(CodeSchemaInvalidDescriptor, "descriptor %d has no name", i)
		}
		for j := 0; j < i; j++ {
			if descriptors[j].name == d.name {
				return nil, ErrSchemaDuplicateAccountName.WithAccount(d.name)
			}
		}
	}

	// References can point forward, so names must all be known before any
	// descriptor is validated.
	for i, d := range descriptors {
		if err := s.validateDescriptor(i, d); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MustSchema is NewSchema, panicking on error. Schemas are static program
// declarations, so construction failures are programming errors.
func MustSchema(descriptors ...*AccountDescriptor) *Schema {
	s, err := NewSchema(descriptors...)
	if err != nil {
		panic(err)
	}

	return s
}

// Len returns the number of accounts the schema expects.
func (s *Schema) Len() int {
	return len(s.descriptors)
}

// Descriptor returns the named descriptor.
func (s *Schema) Descriptor(name string) (*AccountDescriptor, bool) {
	if i := s.index(name); i >= 0 {
		return s.descriptors[i], true
	}

	return nil, false
}

func (s *Schema) index(name string) int {
	for i, d := range s.descriptors {
		if d.name == name {
			return i
		}
	}

	return -1
}

func (s *Schema) validateDescriptor(index int, d *AccountDescriptor) error {
	switch d.kind {
	case KindSigner:
		d.signer = true
	case KindProgram:
		d.executable = true
	case KindAccount:
		if d.newState == nil {
			return NewErrorf(CodeSchemaInvalidDescriptor, "typed account requires a state factory").WithAccount(d.name)
		}
		if len(d.discriminator) != DiscriminatorLength {
			return NewErrorf(CodeSchemaInvalidDescriptor, "typed account requires an %d-byte discriminator", DiscriminatorLength).WithAccount(d.name)
		}
	}

	if d.kind != KindAccount {
		if d.newState != nil || d.discriminator != nil {
			return NewErrorf(CodeSchemaInvalidDescriptor, "payload type applies only to typed accounts").WithAccount(d.name)
		}
		if d.init != initNone {
			return NewErrorf(CodeSchemaInvalidDescriptor, "init applies only to typed accounts").WithAccount(d.name)
		}
	}

	if d.init != initNone {
		d.mut = true
	}

	if len(d.seeds) == 0 {
		if d.bump == bumpKnown {
			return NewErrorf(CodeSchemaInvalidDescriptor, "a known bump requires seeds").WithAccount(d.name)
		}
		if d.seedProgram != nil {
			return NewErrorf(CodeSchemaInvalidDescriptor, "a derivation program requires seeds").WithAccount(d.name)
		}
	} else {
		// The bump seed occupies one of the derivation slots.
		if len(d.seeds)+1 > solana.MaxSeeds {
			return ErrTooManySeeds.WithAccount(d.name)
		}

		for _, seed := range d.seeds {
			if err := s.validateSeed(index, d, seed); err != nil {
				return err
			}
		}
	}

	if d.closeTo != "" {
		if d.closeTo == d.name {
			return ErrCloseToSelf.WithAccount(d.name)
		}
		if s.index(d.closeTo) < 0 {
			return NewErrorf(CodeSchemaUnknownReference, "close target %q not in schema", d.closeTo).WithAccount(d.name)
		}
		if !d.mut {
			return NewErrorf(CodeSchemaInvalidDescriptor, "close requires a mutable account").WithAccount(d.name)
		}
	}

	if d.resizeMax > 0 {
		if d.resizeMax > solana.MaxPermittedDataLength {
			return ErrReallocSizeExceedsMax.WithAccount(d.name)
		}
		if !d.mut {
			return NewErrorf(CodeSchemaInvalidDescriptor, "resizable requires a mutable account").WithAccount(d.name)
		}
	}

	if len(d.hasOne) > 0 {
		if d.kind != KindAccount {
			return NewErrorf(CodeSchemaInvalidDescriptor, "has one requires a typed account").WithAccount(d.name)
		}
		if _, ok := d.newState().(KeyFields); !ok {
			return NewErrorf(CodeSchemaInvalidDescriptor, "has one requires a state exposing key fields").WithAccount(d.name)
		}
		for _, h := range d.hasOne {
			if s.index(h.target) < 0 {
				return NewErrorf(CodeSchemaUnknownReference, "has one target %q not in schema", h.target).WithAccount(d.name)
			}
		}
	}

	return nil
}

func (s *Schema) validateSeed(index int, d *AccountDescriptor, seed SeedSpec) error {
	switch seed.kind {
	case SeedLiteral:
		if len(seed.literal) > solana.MaxSeedLength {
			return ErrSeedTooLong.WithAccount(d.name)
		}

	case SeedAccount:
		if seed.account == d.name {
			return ErrSchemaSeedCycle.WithAccount(d.name)
		}
		if s.index(seed.account) < 0 {
			return NewErrorf(CodeSchemaUnknownReference, "seed references account %q not in schema", seed.account).WithAccount(d.name)
		}

	case SeedField:
		i := s.index(seed.account)
		if i < 0 {
			return NewErrorf(CodeSchemaUnknownReference, "seed references account %q not in schema", seed.account).WithAccount(d.name)
		}
		target := s.descriptors[i]
		if target.kind != KindAccount || target.init != initNone {
			return NewErrorf(CodeSchemaUnknownReference, "field seeds require an initialized typed account, %q is not", seed.account).WithAccount(d.name)
		}

	case SeedBump:
		i := s.index(seed.account)
		if i < 0 {
			return NewErrorf(CodeSchemaUnknownReference, "seed references account %q not in schema", seed.account).WithAccount(d.name)
		}
		if i >= index {
			return ErrSchemaSeedCycle.WithAccount(d.name)
		}
		if len(s.descriptors[i].seeds) == 0 {
			return NewErrorf(CodeSchemaSeedCycle, "bump reference targets account %q, which has no seeds", seed.account).WithAccount(d.name)
		}
	}

	return nil
}
