package frame

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode is the stable numeric identifier attached to every engine
// failure. Hosts surface the value to clients as the program error code,
// so the numbering never changes once assigned. Where the same failure
// exists in Anchor, the Anchor number is used.
type ErrorCode uint32

const (
	// Instruction dispatch.
	CodeInstructionMissing           ErrorCode = 100
	CodeInstructionFallbackNotFound  ErrorCode = 101
	CodeInstructionDidNotDeserialize ErrorCode = 102

	// Account constraints.
	CodeConstraintMut        ErrorCode = 2000
	CodeConstraintHasOne     ErrorCode = 2001
	CodeConstraintSigner     ErrorCode = 2002
	CodeConstraintRaw        ErrorCode = 2003
	CodeConstraintOwner      ErrorCode = 2004
	CodeConstraintRentExempt ErrorCode = 2005
	CodeConstraintSeeds      ErrorCode = 2006
	CodeConstraintExecutable ErrorCode = 2007
	CodeConstraintAddress    ErrorCode = 2012
	CodeConstraintSpace      ErrorCode = 2019

	// Account structure.
	CodeAccountDiscriminatorAlreadySet ErrorCode = 3000
	CodeAccountDiscriminatorNotFound   ErrorCode = 3001
	CodeAccountDiscriminatorMismatch   ErrorCode = 3002
	CodeAccountDidNotDeserialize       ErrorCode = 3003
	CodeAccountNotEnoughAccountKeys    ErrorCode = 3005
	CodeAccountOwnedByWrongProgram     ErrorCode = 3007
	CodeAccountNotSigner               ErrorCode = 3010
	CodeAccountNotSystemOwned          ErrorCode = 3011

	// Seed resolution and address derivation.
	CodeAccountNotFound                   ErrorCode = 3100
	CodeFieldNotFound                     ErrorCode = 3101
	CodeBumpNotFound                      ErrorCode = 3102
	CodeSeedTooLong                       ErrorCode = 3103
	CodeTooManySeeds                      ErrorCode = 3104
	CodePdaDerivationFailed               ErrorCode = 3105
	CodeConstraintDuplicateMutableAccount ErrorCode = 3106

	// Close.
	CodeCloseAccountNotWritable     ErrorCode = 3200
	CodeCloseDestinationNotWritable ErrorCode = 3201
	CodeCloseToSelf                 ErrorCode = 3202

	// Realloc.
	CodeReallocNotWritable       ErrorCode = 3300
	CodeReallocZeroSize          ErrorCode = 3301
	CodeReallocSizeExceedsMax    ErrorCode = 3302
	CodeReallocIncreaseTooLarge  ErrorCode = 3303
	CodeReallocPayerRequired     ErrorCode = 3304
	CodeReallocPayerNotSigner    ErrorCode = 3305
	CodeReallocInsufficientPayer ErrorCode = 3306
	CodeReallocInsufficientRent  ErrorCode = 3307

	// Schema construction.
	CodeSchemaDuplicateAccountName ErrorCode = 3400
	CodeSchemaTooManyAccounts      ErrorCode = 3401
	CodeSchemaUnknownReference     ErrorCode = 3402
	CodeSchemaSeedCycle            ErrorCode = 3403
	CodeSchemaInvalidDescriptor    ErrorCode = 3404

	// Program identity.
	CodeDeclaredProgramIDMismatch ErrorCode = 4100

	// CustomErrorOffset is the first code available to program-defined
	// constraint errors, matching the Anchor convention.
	CustomErrorOffset ErrorCode = 6000
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInstructionMissing:
		return "InstructionMissing"
	case CodeInstructionFallbackNotFound:
		return "InstructionFallbackNotFound"
	case CodeInstructionDidNotDeserialize:
		return "InstructionDidNotDeserialize"
	case CodeConstraintMut:
		return "ConstraintMut"
	case CodeConstraintHasOne:
		return "ConstraintHasOne"
	case CodeConstraintSigner:
		return "ConstraintSigner"
	case CodeConstraintRaw:
		return "ConstraintRaw"
	case CodeConstraintOwner:
		return "ConstraintOwner"
	case CodeConstraintRentExempt:
		return "ConstraintRentExempt"
	case CodeConstraintSeeds:
		return "ConstraintSeeds"
	case CodeConstraintExecutable:
		return "ConstraintExecutable"
	case CodeConstraintAddress:
		return "ConstraintAddress"
	case CodeConstraintSpace:
		return "ConstraintSpace"
	case CodeAccountDiscriminatorAlreadySet:
		return "AccountDiscriminatorAlreadySet"
	case CodeAccountDiscriminatorNotFound:
		return "AccountDiscriminatorNotFound"
	case CodeAccountDiscriminatorMismatch:
		return "AccountDiscriminatorMismatch"
	case CodeAccountDidNotDeserialize:
		return "AccountDidNotDeserialize"
	case CodeAccountNotEnoughAccountKeys:
		return "AccountNotEnoughAccountKeys"
	case CodeAccountOwnedByWrongProgram:
		return "AccountOwnedByWrongProgram"
	case CodeAccountNotSigner:
		return "AccountNotSigner"
	case CodeAccountNotSystemOwned:
		return "AccountNotSystemOwned"
	case CodeAccountNotFound:
		return "AccountNotFound"
	case CodeFieldNotFound:
		return "FieldNotFound"
	case CodeBumpNotFound:
		return "BumpNotFound"
	case CodeSeedTooLong:
		return "SeedTooLong"
	case CodeTooManySeeds:
		return "TooManySeeds"
	case CodePdaDerivationFailed:
		return "PdaDerivationFailed"
	case CodeConstraintDuplicateMutableAccount:
		return "ConstraintDuplicateMutableAccount"
	case CodeCloseAccountNotWritable:
		return "CloseAccountNotWritable"
	case CodeCloseDestinationNotWritable:
		return "CloseDestinationNotWritable"
	case CodeCloseToSelf:
		return "CloseToSelf"
	case CodeReallocNotWritable:
		return "ReallocNotWritable"
	case CodeReallocZeroSize:
		return "ReallocZeroSize"
	case CodeReallocSizeExceedsMax:
		return "ReallocSizeExceedsMax"
	case CodeReallocIncreaseTooLarge:
		return "ReallocIncreaseTooLarge"
	case CodeReallocPayerRequired:
		return "ReallocPayerRequired"
	case CodeReallocPayerNotSigner:
		return "ReallocPayerNotSigner"
	case CodeReallocInsufficientPayer:
		return "ReallocInsufficientPayer"
	case CodeReallocInsufficientRent:
		return "ReallocInsufficientRent"
	case CodeSchemaDuplicateAccountName:
		return "SchemaDuplicateAccountName"
	case CodeSchemaTooManyAccounts:
		return "SchemaTooManyAccounts"
	case CodeSchemaUnknownReference:
		return "SchemaUnknownReference"
	case CodeSchemaSeedCycle:
		return "SchemaSeedCycle"
	case CodeSchemaInvalidDescriptor:
		return "SchemaInvalidDescriptor"
	case CodeDeclaredProgramIDMismatch:
		return "DeclaredProgramIDMismatch"
	}

	return fmt.Sprintf("Custom(%d)", uint32(c))
}

// Error is an engine failure carrying an ErrorCode. Two Errors match under
// errors.Is when their codes are equal, so callers can compare against the
// package sentinels regardless of any per-account detail attached.
type Error struct {
	code    ErrorCode
	msg     string
	account string
}

var (
	ErrInstructionMissing           = newError(CodeInstructionMissing, "instruction data is missing a discriminator")
	ErrInstructionFallbackNotFound  = newError(CodeInstructionFallbackNotFound, "unknown instruction discriminator")
	ErrInstructionDidNotDeserialize = newError(CodeInstructionDidNotDeserialize, "the instruction arguments did not deserialize")

	ErrConstraintMut        = newError(CodeConstraintMut, "a mut constraint was violated")
	ErrConstraintHasOne     = newError(CodeConstraintHasOne, "a has one constraint was violated")
	ErrConstraintSigner     = newError(CodeConstraintSigner, "a signer constraint was violated")
	ErrConstraintRaw        = newError(CodeConstraintRaw, "a raw constraint was violated")
	ErrConstraintOwner      = newError(CodeConstraintOwner, "an owner constraint was violated")
	ErrConstraintRentExempt = newError(CodeConstraintRentExempt, "a rent exemption constraint was violated")
	ErrConstraintSeeds      = newError(CodeConstraintSeeds, "a seeds constraint was violated")
	ErrConstraintExecutable = newError(CodeConstraintExecutable, "an executable constraint was violated")
	ErrConstraintAddress    = newError(CodeConstraintAddress, "an address constraint was violated")
	ErrConstraintSpace      = newError(CodeConstraintSpace, "a space constraint was violated")

	ErrAccountDiscriminatorAlreadySet = newError(CodeAccountDiscriminatorAlreadySet, "the account discriminator was already set")
	ErrAccountDiscriminatorNotFound   = newError(CodeAccountDiscriminatorNotFound, "no discriminator was found on the account")
	ErrAccountDiscriminatorMismatch   = newError(CodeAccountDiscriminatorMismatch, "the account discriminator did not match")
	ErrAccountDidNotDeserialize       = newError(CodeAccountDidNotDeserialize, "failed to deserialize the account")
	ErrAccountNotEnoughAccountKeys    = newError(CodeAccountNotEnoughAccountKeys, "not enough account keys given to the instruction")
	ErrAccountOwnedByWrongProgram     = newError(CodeAccountOwnedByWrongProgram, "the account is owned by a different program than expected")
	ErrAccountNotSigner               = newError(CodeAccountNotSigner, "the account did not sign the instruction")
	ErrAccountNotSystemOwned          = newError(CodeAccountNotSystemOwned, "the account is not owned by the system program")

	ErrAccountNotFound                   = newError(CodeAccountNotFound, "account not found")
	ErrFieldNotFound                     = newError(CodeFieldNotFound, "field not found")
	ErrBumpNotFound                      = newError(CodeBumpNotFound, "bump not found")
	ErrSeedTooLong                       = newError(CodeSeedTooLong, "seed exceeds the maximum seed length")
	ErrTooManySeeds                      = newError(CodeTooManySeeds, "too many seeds")
	ErrPdaDerivationFailed               = newError(CodePdaDerivationFailed, "program address derivation failed")
	ErrConstraintDuplicateMutableAccount = newError(CodeConstraintDuplicateMutableAccount, "a duplicate mutable account was passed to the instruction")

	ErrCloseAccountNotWritable     = newError(CodeCloseAccountNotWritable, "the account to close is not writable")
	ErrCloseDestinationNotWritable = newError(CodeCloseDestinationNotWritable, "the close destination is not writable")
	ErrCloseToSelf                 = newError(CodeCloseToSelf, "an account cannot be closed to itself")

	ErrReallocNotWritable       = newError(CodeReallocNotWritable, "the account to resize is not writable")
	ErrReallocZeroSize          = newError(CodeReallocZeroSize, "accounts cannot be resized to zero bytes")
	ErrReallocSizeExceedsMax    = newError(CodeReallocSizeExceedsMax, "the requested size exceeds the maximum account size")
	ErrReallocIncreaseTooLarge  = newError(CodeReallocIncreaseTooLarge, "the size increase exceeds the per-call realloc limit")
	ErrReallocPayerRequired     = newError(CodeReallocPayerRequired, "a payer is required to fund the size increase")
	ErrReallocPayerNotSigner    = newError(CodeReallocPayerNotSigner, "the payer did not sign the instruction")
	ErrReallocInsufficientPayer = newError(CodeReallocInsufficientPayer, "the payer cannot fund the size increase")
	ErrReallocInsufficientRent  = newError(CodeReallocInsufficientRent, "the resized account would not be rent exempt")

	ErrSchemaDuplicateAccountName = newError(CodeSchemaDuplicateAccountName, "duplicate account name in schema")
	ErrSchemaTooManyAccounts      = newError(CodeSchemaTooManyAccounts, "schema exceeds the maximum number of accounts")
	ErrSchemaUnknownReference     = newError(CodeSchemaUnknownReference, "schema references an unknown account")
	ErrSchemaSeedCycle            = newError(CodeSchemaSeedCycle, "seed references must target earlier accounts")
	ErrSchemaInvalidDescriptor    = newError(CodeSchemaInvalidDescriptor, "invalid account descriptor")

	ErrDeclaredProgramIDMismatch = newError(CodeDeclaredProgramIDMismatch, "the instruction program id does not match the declared program id")
)

func newError(code ErrorCode, msg string) *Error {
	return &Error{
		code: code,
		msg:  msg,
	}
}

// NewErrorf creates an engine error with the given code and a formatted
// message. The result matches the package sentinel for the same code under
// errors.Is.
func NewErrorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		code: code,
		msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e.account != "" {
		return fmt.Sprintf("%s: account %s", e.msg, e.account)
	}

	return e.msg
}

// Code returns the numeric error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Account returns the name of the account the failure was attributed to,
// if any.
func (e *Error) Account() string {
	return e.account
}

// WithAccount returns a copy of the error attributed to the named account.
func (e *Error) WithAccount(name string) *Error {
	clone := *e
	clone.account = name
	return &clone
}

// Is matches any Error with the same code, which makes errors.Is work
// against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// CodeOf extracts the engine error code from anywhere in the chain.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.code, true
	}

	return 0, false
}
