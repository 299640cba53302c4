package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/solfidence/solfidence-contract/common"
	"github.com/solfidence/solfidence-contract/contracts/token/tokenconst"
)

const tokenPath = "../contracts/token"

func deployTokenContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, tokenPath,
		path.Join(tokenPath, "config.yml"))

	e.DeployContract(t, c, nil)
	return c.Hash
}

func newTokenInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	return e.CommitteeInvoker(deployTokenContract(t, e))
}

func TestTokenGeneric(t *testing.T) {
	c := newTokenInvoker(t)

	c.Invoke(t, "REP", "symbol")
	c.Invoke(t, 0, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, common.Version, "version")
}

func TestTokenCreateAsset(t *testing.T) {
	c := newTokenInvoker(t)

	mint := randomBytes(32)
	authority := randomBytes(20)

	c.Invoke(t, stackitem.Null{}, "createAsset", mint, 0, authority)

	t.Run("duplicate id", func(t *testing.T) {
		c.InvokeFail(t, tokenconst.AssetExistsError, "createAsset",
			mint, 0, randomBytes(20))
	})

	t.Run("invalid mint id length", func(t *testing.T) {
		c.InvokeFail(t, tokenconst.InvalidMintIDError, "createAsset",
			randomBytes(16), 0, authority)
	})

	t.Run("non-zero decimals", func(t *testing.T) {
		c.InvokeFail(t, tokenconst.IndivisibleError, "createAsset",
			randomBytes(32), 1, authority)
	})
}

func TestTokenMintOne(t *testing.T) {
	c := newTokenInvoker(t)

	mint := randomBytes(32)
	c.Invoke(t, stackitem.Null{}, "createAsset", mint, 0, randomBytes(20))

	acc := c.NewAccount(t)

	t.Run("direct invocation is not the authority", func(t *testing.T) {
		c.WithSigners(acc).InvokeFail(t, tokenconst.NotAuthorityError, "mintOne",
			mint, acc.ScriptHash(), 255)
	})

	t.Run("missing asset", func(t *testing.T) {
		c.InvokeFail(t, tokenconst.AssetNotFoundError, "mintOne",
			randomBytes(32), acc.ScriptHash(), 255)
	})
}

func TestTokenReadMethods(t *testing.T) {
	c := newTokenInvoker(t)

	mint := randomBytes(32)
	c.Invoke(t, stackitem.Null{}, "createAsset", mint, 0, randomBytes(20))

	c.Invoke(t, 0, "balanceOf", randomBytes(20), mint)
	c.InvokeFail(t, tokenconst.NotMintedError, "ownerOf", mint)
	c.InvokeFail(t, tokenconst.AssetNotFoundError, "ownerOf", randomBytes(32))
}
