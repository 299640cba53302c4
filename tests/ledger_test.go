package tests

import (
	"path"
	"strings"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/solfidence/solfidence-contract/common"
	"github.com/solfidence/solfidence-contract/contracts/ledger/ledgerconst"
	"github.com/solfidence/solfidence-contract/contracts/token/tokenconst"
	tokenrpc "github.com/solfidence/solfidence-contract/rpc/token"
	"github.com/stretchr/testify/require"
)

const ledgerPath = "../contracts/ledger"

func deployLedgerContract(t *testing.T, e *neotest.Executor, addrToken util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, ledgerPath,
		path.Join(ledgerPath, "config.yml"))

	args := make([]any, 1)
	args[0] = addrToken

	e.DeployContract(t, c, args)
	return c.Hash
}

// newLedgerInvoker deploys the token and ledger contracts and returns
// committee invokers of both.
func newLedgerInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.ContractInvoker) {
	e := newExecutor(t)

	tokenHash := deployTokenContract(t, e)
	ledgerHash := deployLedgerContract(t, e, tokenHash)
	return e.CommitteeInvoker(ledgerHash), e.CommitteeInvoker(tokenHash)
}

// deriveMintAuthority recomputes the ledger's mint authority the way the
// contract derives it, with the initial bump value.
func deriveMintAuthority(program util.Uint160) util.Uint160 {
	seed := append([]byte(common.MintAuthorityLabel), program.BytesBE()...)
	seed = append(seed, 255)
	return hash.Hash160(seed)
}

func userAccountItem(owner util.Uint160, userName string, reputation int64, minted bool) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(owner.BytesBE()),
		stackitem.Make(userName),
		stackitem.Make(reputation),
		stackitem.Make(minted),
	})
}

func TestLedgerInitialize(t *testing.T) {
	c, _ := newLedgerInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	owner := acc.ScriptHash()

	account := randomBytes(20)
	cAcc.Invoke(t, userAccountItem(owner, "alice", 0, false), "initialize", account, owner, "alice")
	cAcc.Invoke(t, userAccountItem(owner, "alice", 0, false), "getAccount", account)
	cAcc.Invoke(t, 0, "reputation", account)

	t.Run("repeated initialization", func(t *testing.T) {
		cAcc.InvokeFail(t, ledgerconst.AlreadyInitializedError, "initialize",
			account, owner, "mallory")

		// the stored record is intact
		cAcc.Invoke(t, userAccountItem(owner, "alice", 0, false), "getAccount", account)
	})

	t.Run("invalid name length", func(t *testing.T) {
		cAcc.InvokeFail(t, ledgerconst.InvalidNameLengthError, "initialize",
			randomBytes(20), owner, "")
		cAcc.InvokeFail(t, ledgerconst.InvalidNameLengthError, "initialize",
			randomBytes(20), owner, strings.Repeat("a", ledgerconst.MaxUserNameLength+1))
	})

	t.Run("missing owner witness", func(t *testing.T) {
		accB := c.NewAccount(t)
		c.WithSigners(accB).InvokeFail(t, common.ErrOwnerWitnessFailed, "initialize",
			randomBytes(20), owner, randomUserName())
	})

	t.Run("same address in one block", func(t *testing.T) {
		account := randomBytes(20)
		name := randomUserName()
		tx1 := cAcc.PrepareInvoke(t, "initialize", account, owner, name)
		tx2 := cAcc.PrepareInvoke(t, "initialize", account, owner, randomUserName())

		cAcc.AddNewBlock(t, tx1, tx2)
		cAcc.CheckHalt(t, tx1.Hash(), userAccountItem(owner, name, 0, false))
		cAcc.CheckFault(t, tx2.Hash(), ledgerconst.AlreadyInitializedError)
	})
}

func TestLedgerCreateReputationNFT(t *testing.T) {
	c, cToken := newLedgerInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	owner := acc.ScriptHash()

	account := randomBytes(20)
	cAcc.Invoke(t, userAccountItem(owner, "alice", 0, false), "initialize", account, owner, "alice")

	mint := randomBytes(32)
	holder := owner

	txMint := cAcc.Invoke(t, stackitem.Null{}, "createReputationNFT", account, owner, mint, holder)

	// exactly one credential unit exists and the flag is set
	cToken.Invoke(t, 1, "balanceOf", holder, mint)
	cToken.Invoke(t, stackitem.NewByteArray(holder.BytesBE()), "ownerOf", mint)
	cToken.Invoke(t, 1, "totalSupply")
	cAcc.Invoke(t, userAccountItem(owner, "alice", 0, true), "getAccount", account)

	authority := deriveMintAuthority(c.Hash)
	cToken.Invoke(t, stackitem.NewMapWithValue([]stackitem.MapElement{
		{Key: stackitem.Make("id"), Value: stackitem.Make(mint)},
		{Key: stackitem.Make("authority"), Value: stackitem.Make(authority.BytesBE())},
		{Key: stackitem.Make("minted"), Value: stackitem.Make(true)},
		{Key: stackitem.Make("holder"), Value: stackitem.Make(holder.BytesBE())},
	}), "properties", mint)

	t.Run("transfer notification", func(t *testing.T) {
		aer := c.GetTxExecResult(t, txMint)
		events, err := tokenrpc.TransferEventsFromApplicationLog(&result.ApplicationLog{
			Container:     aer.Container,
			IsTransaction: true,
			Executions:    []state.Execution{aer.Execution},
		})
		require.NoError(t, err)
		require.Len(t, events, 1)

		// minting transfer comes from nobody
		require.Equal(t, util.Uint160{}, events[0].From)
		require.Equal(t, holder, events[0].To)
		require.EqualValues(t, 1, events[0].Amount.Int64())
		require.Equal(t, mint, events[0].TokenId)
	})

	t.Run("repeated minting", func(t *testing.T) {
		cAcc.InvokeFail(t, ledgerconst.AlreadyMintedError, "createReputationNFT",
			account, owner, randomBytes(32), holder)

		// balance of the issued credential is still exactly 1
		cToken.Invoke(t, 1, "balanceOf", holder, mint)
		cToken.Invoke(t, 1, "totalSupply")
	})

	t.Run("not an owner", func(t *testing.T) {
		accB := c.NewAccount(t)
		c.WithSigners(accB).InvokeFail(t, ledgerconst.NotOwnerError, "createReputationNFT",
			account, accB.ScriptHash(), randomBytes(32), accB.ScriptHash())
	})

	t.Run("missing owner witness", func(t *testing.T) {
		accB := c.NewAccount(t)
		c.WithSigners(accB).InvokeFail(t, common.ErrOwnerWitnessFailed, "createReputationNFT",
			account, owner, randomBytes(32), holder)
	})

	t.Run("missing account", func(t *testing.T) {
		cAcc.InvokeFail(t, ledgerconst.AccountNotFoundError, "createReputationNFT",
			randomBytes(20), owner, randomBytes(32), holder)
	})

	t.Run("token fault leaves no partial state", func(t *testing.T) {
		accB := c.NewAccount(t)
		cAccB := c.WithSigners(accB)
		ownerB := accB.ScriptHash()

		accountB := randomBytes(20)
		cAccB.Invoke(t, userAccountItem(ownerB, "bob", 0, false), "initialize", accountB, ownerB, "bob")

		// mint id is already taken, the token contract refuses to create
		// the asset and the whole operation is rolled back
		cAccB.InvokeFail(t, tokenconst.AssetExistsError, "createReputationNFT",
			accountB, ownerB, mint, ownerB)
		cAccB.Invoke(t, userAccountItem(ownerB, "bob", 0, false), "getAccount", accountB)

		// the account is still creditable with a fresh mint id
		mintB := randomBytes(32)
		cAccB.Invoke(t, stackitem.Null{}, "createReputationNFT", accountB, ownerB, mintB, ownerB)
		cToken.Invoke(t, 1, "balanceOf", ownerB, mintB)
		cToken.Invoke(t, 2, "totalSupply")
	})
}

func TestLedgerUpdateReputation(t *testing.T) {
	c, _ := newLedgerInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	owner := acc.ScriptHash()

	account := randomBytes(20)
	cAcc.Invoke(t, userAccountItem(owner, "alice", 0, false), "initialize", account, owner, "alice")

	cAcc.Invoke(t, userAccountItem(owner, "alice", 10, false), "updateReputation",
		account, owner, 10)
	cAcc.Invoke(t, userAccountItem(owner, "alice", 15, false), "updateReputation",
		account, owner, 5)
	cAcc.Invoke(t, 15, "reputation", account)

	t.Run("zero delta", func(t *testing.T) {
		cAcc.Invoke(t, userAccountItem(owner, "alice", 15, false), "updateReputation",
			account, owner, 0)
	})

	t.Run("negative delta", func(t *testing.T) {
		cAcc.InvokeFail(t, ledgerconst.InvalidDeltaError, "updateReputation",
			account, owner, -1)
		cAcc.Invoke(t, 15, "reputation", account)
	})

	t.Run("not an owner", func(t *testing.T) {
		accB := c.NewAccount(t)
		c.WithSigners(accB).InvokeFail(t, ledgerconst.NotOwnerError, "updateReputation",
			account, accB.ScriptHash(), 10)
		cAcc.Invoke(t, 15, "reputation", account)
	})

	t.Run("missing owner witness", func(t *testing.T) {
		accB := c.NewAccount(t)
		c.WithSigners(accB).InvokeFail(t, common.ErrOwnerWitnessFailed, "updateReputation",
			account, owner, 10)
	})

	t.Run("missing account", func(t *testing.T) {
		cAcc.InvokeFail(t, ledgerconst.AccountNotFoundError, "updateReputation",
			randomBytes(20), owner, 10)
	})

	t.Run("concurrent invocations", func(t *testing.T) {
		tx1 := cAcc.PrepareInvoke(t, "updateReputation", account, owner, 100)
		tx2 := cAcc.PrepareInvoke(t, "updateReputation", account, owner, 200)

		cAcc.AddNewBlock(t, tx1, tx2)
		cAcc.CheckHalt(t, tx1.Hash(), userAccountItem(owner, "alice", 115, false))
		cAcc.CheckHalt(t, tx2.Hash(), userAccountItem(owner, "alice", 315, false))
	})
}

func TestLedgerMintAuthority(t *testing.T) {
	c, _ := newLedgerInvoker(t)

	authority := deriveMintAuthority(c.Hash)
	c.Invoke(t, stackitem.NewByteArray(authority.BytesBE()), "mintAuthority")

	// derivation is stateless and repeatable
	s, err := c.TestInvoke(t, "mintAuthority")
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())
	require.Equal(t, authority.BytesBE(), s.Top().Bytes())
}

func TestLedgerTokenContract(t *testing.T) {
	c, cToken := newLedgerInvoker(t)

	c.Invoke(t, stackitem.NewBuffer(cToken.Hash.BytesBE()), "tokenContract")
}

func TestLedgerVersion(t *testing.T) {
	c, _ := newLedgerInvoker(t)

	c.Invoke(t, common.Version, "version")

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, "only committee can update contract", "update",
		[]byte{}, []byte{}, nil)
}
