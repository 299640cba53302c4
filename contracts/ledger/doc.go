/*
Package ledger implements the reputation Ledger contract.

The contract keeps one UserAccount record per registered account address. A
record binds the account to its owner identity at initialization, carries a
user name label and a monotone reputation counter, and remembers whether the
one-time reputation credential has been issued. Every mutation is gated by a
witness check of the recorded owner; a failed precondition faults and fully
rolls back the transaction.

The reputation credential is a single-unit zero-decimal asset created in the
Token contract. Supply authority over the asset is not a key anybody holds: it
is derived on demand from the fixed "mint_authority" label and the ledger
contract's own hash, and the Token contract verifies it by recomputing the
same derivation from the calling contract's hash and the presented bump value.
Both token calls happen inside a single CreateReputationNFT invocation, so a
failure at any point leaves neither a minted asset without the flag nor the
flag without an asset.

# Contract notifications

AccountInitialized notification:

	AccountInitialized:
	  - name: account
	    type: Hash160
	  - name: owner
	    type: Hash160
	  - name: userName
	    type: String

CredentialMinted notification:

	CredentialMinted:
	  - name: account
	    type: Hash160
	  - name: mint
	    type: ByteArray
	  - name: holder
	    type: Hash160

ReputationUpdated notification:

	ReputationUpdated:
	  - name: account
	    type: Hash160
	  - name: delta
	    type: Integer
	  - name: reputation
	    type: Integer
*/
package ledger

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' + account Hash160 -> std.Serialize(UserAccount)
   per-address user account records
 - "tokenScriptHash" -> Hash160
   script hash of the token contract set at deploy

# Accounts
Contract stores exactly one record per account address. The record is created
by Initialize and never deleted; Owner and UserName never change after
creation, Reputation never decreases, CredentialMinted never resets.
*/
