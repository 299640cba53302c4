// Dump reputation ledger and credential token data from the chain.
//
// It produces a human-readable listing of all user accounts registered in the
// ledger contract together with all credential assets of the token contract
// it is bound to. Data is read directly from contract storage via the
// `findstates` RPC, so the target node must have state root serving enabled.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	ledgerrpc "github.com/solfidence/solfidence-contract/rpc/ledger"
)

// storage prefixes of the dumped contracts.
const (
	userAccountPrefix = 'a'
	assetPrefix       = 'm'
)

func main() {
	blockChainRPCEndpoint := flag.String("rpc", "", "Blockchain RPC server endpoint")
	ledgerContract := flag.String("ledger", "", "Ledger contract address or script hash in LE")

	flag.Parse()

	if *blockChainRPCEndpoint == "" {
		log.Fatal("missing blockchain RPC server endpoint")
	} else if *ledgerContract == "" {
		log.Fatal("missing ledger contract address")
	}

	ledgerHash, err := parseContractAddress(*ledgerContract)
	if err != nil {
		log.Fatalf("invalid ledger contract address: %v", err)
	}

	b, err := newRemoteBlockChain(*blockChainRPCEndpoint)
	if err != nil {
		log.Fatal(err)
	}

	defer b.close()

	tokenHash, err := ledgerrpc.NewReader(b.actor, ledgerHash).TokenContract()
	if err != nil {
		log.Fatalf("read bound token contract: %v", err)
	}

	fmt.Printf("Ledger contract: %s\n", address.Uint160ToString(ledgerHash))
	fmt.Printf("Token contract:  %s\n\n", address.Uint160ToString(tokenHash))

	err = dumpUserAccounts(b, ledgerHash)
	if err != nil {
		log.Fatalf("dump user accounts: %v", err)
	}

	err = dumpAssets(b, tokenHash)
	if err != nil {
		log.Fatalf("dump credential assets: %v", err)
	}
}

func parseContractAddress(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	return util.Uint160DecodeStringLE(s)
}

func dumpUserAccounts(b *remoteBlockchain, ledgerHash util.Uint160) error {
	var n int

	err := b.iterateContractStorage(ledgerHash, userAccountPrefix, func(key, value []byte) error {
		if len(key) != 1+util.Uint160Size {
			return fmt.Errorf("unexpected user account key length %d", len(key))
		}

		account, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return fmt.Errorf("decode user account key: %w", err)
		}

		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("deserialize user account record: %w", err)
		}

		var rec ledgerrpc.LedgerUserAccount

		err = rec.FromStackItem(item)
		if err != nil {
			return fmt.Errorf("decode user account record: %w", err)
		}

		n++

		fmt.Printf("account: %s\n", address.Uint160ToString(account))
		fmt.Printf("  owner:      %s\n", address.Uint160ToString(rec.Owner))
		fmt.Printf("  user name:  %s\n", rec.UserName)
		fmt.Printf("  reputation: %s\n", rec.Reputation)
		fmt.Printf("  minted:     %t\n", rec.CredentialMinted)

		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("total user accounts: %d\n\n", n)

	return nil
}

func dumpAssets(b *remoteBlockchain, tokenHash util.Uint160) error {
	var n int

	err := b.iterateContractStorage(tokenHash, assetPrefix, func(key, value []byte) error {
		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("deserialize asset record: %w", err)
		}

		fields, ok := item.Value().([]stackitem.Item)
		if !ok || len(fields) != 3 {
			return errors.New("asset record is not a 3-field structure")
		}

		authorityBytes, err := fields[0].TryBytes()
		if err != nil {
			return fmt.Errorf("decode asset authority: %w", err)
		}

		authority, err := util.Uint160DecodeBytesBE(authorityBytes)
		if err != nil {
			return fmt.Errorf("decode asset authority: %w", err)
		}

		supply, err := fields[1].TryInteger()
		if err != nil {
			return fmt.Errorf("decode asset supply: %w", err)
		}

		n++

		fmt.Printf("asset: %s\n", base58.Encode(key[1:]))
		fmt.Printf("  authority: %s\n", address.Uint160ToString(authority))
		fmt.Printf("  supply:    %s\n", supply)

		if supply.Sign() > 0 {
			holderBytes, err := fields[2].TryBytes()
			if err != nil {
				return fmt.Errorf("decode asset holder: %w", err)
			}

			holder, err := util.Uint160DecodeBytesBE(holderBytes)
			if err != nil {
				return fmt.Errorf("decode asset holder: %w", err)
			}

			fmt.Printf("  holder:    %s\n", address.Uint160ToString(holder))
		}

		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("total credential assets: %d\n", n)

	return nil
}
