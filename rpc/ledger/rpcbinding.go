// Package ledger contains RPC wrappers for Solfidence Ledger contract.
package ledger

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// LedgerUserAccount is a contract-specific ledger.UserAccount type used by its methods.
type LedgerUserAccount struct {
	Owner util.Uint160
	UserName string
	Reputation *big.Int
	CredentialMinted bool
}

// AccountInitializedEvent represents "AccountInitialized" event emitted by the contract.
type AccountInitializedEvent struct {
	Account util.Uint160
	Owner util.Uint160
	UserName string
}

// CredentialMintedEvent represents "CredentialMinted" event emitted by the contract.
type CredentialMintedEvent struct {
	Account util.Uint160
	Mint []byte
	Holder util.Uint160
}

// ReputationUpdatedEvent represents "ReputationUpdated" event emitted by the contract.
type ReputationUpdatedEvent struct {
	Account util.Uint160
	Delta *big.Int
	Reputation *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// GetAccount invokes `getAccount` method of contract.
func (c *ContractReader) GetAccount(account util.Uint160) (*LedgerUserAccount, error) {
	return itemToLedgerUserAccount(unwrap.Item(c.invoker.Call(c.hash, "getAccount", account)))
}

// MintAuthority invokes `mintAuthority` method of contract.
func (c *ContractReader) MintAuthority() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "mintAuthority"))
}

// Reputation invokes `reputation` method of contract.
func (c *ContractReader) Reputation(account util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "reputation", account))
}

// TokenContract invokes `tokenContract` method of contract.
func (c *ContractReader) TokenContract() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "tokenContract"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateReputationNFT creates a transaction invoking `createReputationNFT` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateReputationNFT(account util.Uint160, owner util.Uint160, mint []byte, holder util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createReputationNFT", account, owner, mint, holder)
}

// CreateReputationNFTTransaction creates a transaction invoking `createReputationNFT` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateReputationNFTTransaction(account util.Uint160, owner util.Uint160, mint []byte, holder util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createReputationNFT", account, owner, mint, holder)
}

// CreateReputationNFTUnsigned creates a transaction invoking `createReputationNFT` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateReputationNFTUnsigned(account util.Uint160, owner util.Uint160, mint []byte, holder util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createReputationNFT", nil, account, owner, mint, holder)
}

// Initialize creates a transaction invoking `initialize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Initialize(account util.Uint160, owner util.Uint160, userName string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initialize", account, owner, userName)
}

// InitializeTransaction creates a transaction invoking `initialize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeTransaction(account util.Uint160, owner util.Uint160, userName string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initialize", account, owner, userName)
}

// InitializeUnsigned creates a transaction invoking `initialize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeUnsigned(account util.Uint160, owner util.Uint160, userName string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initialize", nil, account, owner, userName)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// UpdateReputation creates a transaction invoking `updateReputation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateReputation(account util.Uint160, owner util.Uint160, delta *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateReputation", account, owner, delta)
}

// UpdateReputationTransaction creates a transaction invoking `updateReputation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateReputationTransaction(account util.Uint160, owner util.Uint160, delta *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateReputation", account, owner, delta)
}

// UpdateReputationUnsigned creates a transaction invoking `updateReputation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateReputationUnsigned(account util.Uint160, owner util.Uint160, delta *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateReputation", nil, account, owner, delta)
}

// itemToLedgerUserAccount converts stack item into *LedgerUserAccount.
func itemToLedgerUserAccount(item stackitem.Item, err error) (*LedgerUserAccount, error) {
	if err != nil {
		return nil, err
	}
	var res = new(LedgerUserAccount)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of LedgerUserAccount from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *LedgerUserAccount) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.UserName, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field UserName: %w", err)
	}

	index++
	res.Reputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Reputation: %w", err)
	}

	index++
	res.CredentialMinted, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field CredentialMinted: %w", err)
	}

	return nil
}

// AccountInitializedEventsFromApplicationLog retrieves a set of all emitted events
// with "AccountInitialized" name from the provided [result.ApplicationLog].
func AccountInitializedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AccountInitializedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AccountInitializedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AccountInitialized" {
				continue
			}
			event := new(AccountInitializedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AccountInitializedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AccountInitializedEvent or
// returns an error if it's not possible to do to so.
func (e *AccountInitializedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Account, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	e.Owner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.UserName, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field UserName: %w", err)
	}

	return nil
}

// CredentialMintedEventsFromApplicationLog retrieves a set of all emitted events
// with "CredentialMinted" name from the provided [result.ApplicationLog].
func CredentialMintedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CredentialMintedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CredentialMintedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "CredentialMinted" {
				continue
			}
			event := new(CredentialMintedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CredentialMintedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CredentialMintedEvent or
// returns an error if it's not possible to do to so.
func (e *CredentialMintedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Account, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	e.Mint, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Mint: %w", err)
	}

	index++
	e.Holder, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Holder: %w", err)
	}

	return nil
}

// ReputationUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReputationUpdated" name from the provided [result.ApplicationLog].
func ReputationUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReputationUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReputationUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ReputationUpdated" {
				continue
			}
			event := new(ReputationUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReputationUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReputationUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *ReputationUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Account, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Account: %w", err)
	}

	index++
	e.Delta, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Delta: %w", err)
	}

	index++
	e.Reputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Reputation: %w", err)
	}

	return nil
}
