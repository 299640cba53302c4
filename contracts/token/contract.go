package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/solfidence/solfidence-contract/common"
	"github.com/solfidence/solfidence-contract/contracts/token/tokenconst"
)

// Asset is a credential asset record.
type Asset struct {
	// Authority is the derived address allowed to mint the asset's
	// single unit.
	Authority interop.Hash160
	// Supply is 0 before the unit is minted and 1 after.
	Supply int
	// Holder custodies the minted unit.
	Holder interop.Hash160
}

// Prefixes used for contract data storage.
const (
	// prefixAsset contains map from mint id to serialized Asset.
	prefixAsset byte = 'm'
	// prefixBalance contains map from (holder + mint id) to 1.
	prefixBalance byte = 'b'
	// prefixTotalSupply contains the overall number of minted credentials.
	prefixTotalSupply byte = 's'
)

const symbol = "REP"

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	storage.Put(ctx, []byte{prefixTotalSupply}, 0)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Symbol returns the credential token symbol.
func Symbol() string {
	return symbol
}

// Decimals returns the credential token decimals. Credentials are
// indivisible, so it is always zero.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of credentials minted by the
// contract.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{prefixTotalSupply}).(int)
}

// CreateAsset method registers a new credential asset with the given
// identifier and supply authority. The asset is created empty; its single
// unit is issued later with MintOne. Only zero decimals are accepted.
func CreateAsset(mint []byte, decimals int, authority interop.Hash160) {
	if len(mint) != tokenconst.MintIDLength {
		panic(tokenconst.InvalidMintIDError)
	}
	if decimals != 0 {
		panic(tokenconst.IndivisibleError)
	}
	if len(authority) != interop.Hash160Len {
		panic("incorrect length of authority script hash")
	}

	ctx := storage.GetContext()
	key := assetKey(mint)
	if storage.Get(ctx, key) != nil {
		panic(tokenconst.AssetExistsError)
	}

	asset := Asset{
		Authority: authority,
		Supply:    0,
		Holder:    nil,
	}
	common.SetSerialized(ctx, key, asset)

	runtime.Log("credential asset created")
}

// MintOne method issues the single unit of the given asset to the holder.
// The calling contract proves authority by the bump value: the supply
// authority is re-derived from the caller's script hash and bump, and minting
// proceeds only if the result matches the authority recorded at asset
// creation. A once-supplied asset cannot be minted again, transferred or
// burned.
//
// Produces Transfer notification with empty sender.
func MintOne(mint []byte, holder interop.Hash160, bump int) {
	if len(holder) != interop.Hash160Len {
		panic("incorrect length of holder script hash")
	}

	ctx := storage.GetContext()
	key := assetKey(mint)
	asset := getAsset(ctx, key)

	caller := runtime.GetCallingScriptHash()
	candidate := common.AuthorityCandidate(common.MintAuthorityLabel, caller, bump)
	if !common.BytesEqual(candidate, asset.Authority) {
		panic(tokenconst.NotAuthorityError)
	}

	if asset.Supply != 0 {
		panic(tokenconst.AlreadySuppliedError)
	}

	asset.Supply = 1
	asset.Holder = holder
	common.SetSerialized(ctx, key, asset)
	storage.Put(ctx, balanceKey(holder, mint), 1)

	supply := storage.Get(ctx, []byte{prefixTotalSupply}).(int)
	storage.Put(ctx, []byte{prefixTotalSupply}, supply+1)

	runtime.Log("credential minted")
	runtime.Notify("Transfer", interop.Hash160(nil), holder, 1, mint)
}

// BalanceOf returns the amount of the given asset custodied by the holder.
// It is either 0 or 1.
func BalanceOf(holder interop.Hash160, mint []byte) int {
	ctx := storage.GetReadOnlyContext()
	if storage.Get(ctx, balanceKey(holder, mint)) == nil {
		return 0
	}
	return 1
}

// OwnerOf returns the holder of the minted asset unit.
func OwnerOf(mint []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	asset := getAsset(ctx, assetKey(mint))
	if asset.Supply == 0 {
		panic(tokenconst.NotMintedError)
	}
	return asset.Holder
}

// Properties returns the asset identifier, supply authority, minting state
// and holder of the given asset.
func Properties(mint []byte) map[string]any {
	ctx := storage.GetReadOnlyContext()
	asset := getAsset(ctx, assetKey(mint))
	return map[string]any{
		"id":        mint,
		"authority": asset.Authority,
		"minted":    asset.Supply != 0,
		"holder":    asset.Holder,
	}
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func assetKey(mint []byte) []byte {
	return append([]byte{prefixAsset}, mint...)
}

func balanceKey(holder interop.Hash160, mint []byte) []byte {
	key := append([]byte{prefixBalance}, holder...)
	return append(key, mint...)
}

func getAsset(ctx storage.Context, key []byte) Asset {
	data := storage.Get(ctx, key)
	if data == nil {
		panic(tokenconst.AssetNotFoundError)
	}

	return std.Deserialize(data.([]byte)).(Asset)
}
