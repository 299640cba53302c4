package ledger

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/solfidence/solfidence-contract/common"
	"github.com/solfidence/solfidence-contract/contracts/ledger/ledgerconst"
)

// UserAccount is a reputation record of a single registered identity.
type UserAccount struct {
	// Owner is the only identity allowed to mutate the account.
	Owner interop.Hash160
	// UserName is a label set once at registration.
	UserName string
	// Reputation is a non-negative monotone counter.
	Reputation int
	// CredentialMinted is set when the one-time reputation credential
	// has been issued.
	CredentialMinted bool
}

const (
	// userAccountPrefix prepends keys of UserAccount records.
	userAccountPrefix = 'a'

	tokenContractKey = "tokenScriptHash"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		addrToken interop.Hash160
	})

	if len(args.addrToken) != interop.Hash160Len {
		panic("incorrect length of contract script hash")
	}

	storage.Put(ctx, tokenContractKey, args.addrToken)

	runtime.Log("ledger contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("ledger contract updated")
}

// Initialize method registers a new user account at the given address,
// persists UserAccount{owner, userName, 0, false} there and returns the
// created record. It can be invoked only by the owner and only while no
// record exists at the address. The user name must be from 1 to
// MaxUserNameLength bytes long. Both the record address and the owner are
// immutable afterwards.
//
// Produces AccountInitialized notification.
func Initialize(account interop.Hash160, owner interop.Hash160, userName string) UserAccount {
	if len(account) != interop.Hash160Len || len(owner) != interop.Hash160Len {
		panic("incorrect length of account script hash")
	}
	if len(userName) == 0 || len(userName) > ledgerconst.MaxUserNameLength {
		panic(ledgerconst.InvalidNameLengthError)
	}

	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	key := userAccountKey(account)
	if storage.Get(ctx, key) != nil {
		panic(ledgerconst.AlreadyInitializedError)
	}

	acc := UserAccount{
		Owner:            owner,
		UserName:         userName,
		Reputation:       0,
		CredentialMinted: false,
	}
	common.SetSerialized(ctx, key, acc)

	runtime.Log("user account initialized")
	runtime.Notify("AccountInitialized", account, owner, userName)

	return acc
}

// CreateReputationNFT method issues the one-time reputation credential for
// the given account: it derives the mint authority, makes the token contract
// create a zero-decimal asset with that authority and mint its single unit to
// the holder, then marks the account as credentialed. It can be invoked only
// by the account owner and only once per account. Any token contract fault
// aborts the whole transaction, so the minted flag can never disagree with
// the token balance.
//
// Produces CredentialMinted notification.
func CreateReputationNFT(account interop.Hash160, owner interop.Hash160, mint []byte, holder interop.Hash160) {
	if len(holder) != interop.Hash160Len {
		panic("incorrect length of holder script hash")
	}

	ctx := storage.GetContext()
	key := userAccountKey(account)
	acc := getUserAccount(ctx, key)

	if !common.BytesEqual(acc.Owner, owner) {
		panic(ledgerconst.NotOwnerError)
	}
	common.CheckOwnerWitness(owner)

	if acc.CredentialMinted {
		panic(ledgerconst.AlreadyMintedError)
	}

	tokenContract := storage.Get(ctx, tokenContractKey).(interop.Hash160)
	authority, bump := common.DeriveAuthority(common.MintAuthorityLabel, runtime.GetExecutingScriptHash())

	contract.Call(tokenContract, "createAsset", contract.All, mint, 0, authority)
	contract.Call(tokenContract, "mintOne", contract.All, mint, holder, bump)

	acc.CredentialMinted = true
	common.SetSerialized(ctx, key, acc)

	runtime.Log("reputation credential minted")
	runtime.Notify("CredentialMinted", account, mint, holder)
}

// UpdateReputation method increases the reputation counter of the given
// account by delta and returns the updated record. It can be invoked only by
// the account owner. Negative delta is rejected, not clamped.
//
// Produces ReputationUpdated notification.
func UpdateReputation(account interop.Hash160, owner interop.Hash160, delta int) UserAccount {
	ctx := storage.GetContext()
	key := userAccountKey(account)
	acc := getUserAccount(ctx, key)

	if !common.BytesEqual(acc.Owner, owner) {
		panic(ledgerconst.NotOwnerError)
	}
	common.CheckOwnerWitness(owner)

	if delta < 0 {
		panic(ledgerconst.InvalidDeltaError)
	}

	acc.Reputation = acc.Reputation + delta // neo-go#953
	common.SetSerialized(ctx, key, acc)

	runtime.Notify("ReputationUpdated", account, delta, acc.Reputation)

	return acc
}

// GetAccount method returns the UserAccount record stored at the given
// address or panics if there is none.
func GetAccount(account interop.Hash160) UserAccount {
	ctx := storage.GetReadOnlyContext()
	return getUserAccount(ctx, userAccountKey(account))
}

// Reputation method returns the current reputation counter of the given
// account.
func Reputation(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return getUserAccount(ctx, userAccountKey(account)).Reputation
}

// MintAuthority method returns the derived mint authority of this contract.
// The address is recomputed on every call and is never stored; no private
// key for it exists.
func MintAuthority() interop.Hash160 {
	authority, _ := common.DeriveAuthority(common.MintAuthorityLabel, runtime.GetExecutingScriptHash())
	return authority
}

// TokenContract method returns the script hash of the token contract the
// credential is minted through.
func TokenContract() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, tokenContractKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func userAccountKey(account interop.Hash160) []byte {
	return append([]byte{userAccountPrefix}, account...)
}

func getUserAccount(ctx storage.Context, key []byte) UserAccount {
	data := storage.Get(ctx, key)
	if data == nil {
		panic(ledgerconst.AccountNotFoundError)
	}

	return std.Deserialize(data.([]byte)).(UserAccount)
}
