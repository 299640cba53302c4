package ledgerconst

const (
	// MaxUserNameLength is the maximum length of the user name label in bytes.
	MaxUserNameLength = 32

	// AlreadyInitializedError is returned on attempt to initialize an account
	// at an address that already holds a record.
	AlreadyInitializedError = "account already initialized"

	// InvalidNameLengthError is returned if the user name is empty or exceeds
	// MaxUserNameLength.
	InvalidNameLengthError = "invalid user name length"

	// NotOwnerError is returned if the presented identity does not match the
	// owner recorded in the account.
	NotOwnerError = "not an owner of the account"

	// AlreadyMintedError is returned on attempt to issue a second reputation
	// credential for the same account.
	AlreadyMintedError = "reputation credential already minted"

	// InvalidDeltaError is returned if a reputation delta is negative.
	InvalidDeltaError = "negative reputation delta"

	// AccountNotFoundError is returned if the account record is missing.
	AccountNotFoundError = "account does not exist"
)
