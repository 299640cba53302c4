package tokenconst

const (
	// MintIDLength is the exact length of a credential asset identifier in bytes.
	MintIDLength = 32

	// InvalidMintIDError is returned if an asset identifier has wrong length.
	InvalidMintIDError = "invalid mint id length"

	// IndivisibleError is returned on attempt to create a credential asset
	// with non-zero decimals.
	IndivisibleError = "credential asset must have zero decimals"

	// AssetExistsError is returned on attempt to create an asset with an
	// identifier that is already taken.
	AssetExistsError = "asset already exists"

	// AssetNotFoundError is returned if the asset record is missing.
	AssetNotFoundError = "asset does not exist"

	// NotAuthorityError is returned if the caller cannot be re-derived into
	// the supply authority of the asset.
	NotAuthorityError = "mint authority check failed"

	// AlreadySuppliedError is returned on attempt to mint into an asset whose
	// single unit has already been issued.
	AlreadySuppliedError = "asset already supplied"

	// NotMintedError is returned when the owner of a not yet minted asset is
	// requested.
	NotMintedError = "asset has not been minted"
)
