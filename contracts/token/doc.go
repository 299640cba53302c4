/*
Package token implements the credential Token contract.

The contract keeps single-unit zero-decimal assets used as reputation
credentials. An asset is created empty with a recorded supply authority and
receives its only unit with MintOne. The authority is never a key: a minting
contract proves it by passing the bump value its authority was derived with,
and the contract re-derives the address from the caller's script hash to
compare. Credentials are soul-bound: there is no transfer, burn or re-mint
method.

# Contract notifications

Transfer notification:

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray
*/
package token

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'm' + mint id -> std.Serialize(Asset)
   credential asset records
 - 'b' + holder Hash160 + mint id -> 1
   balance marker of the minted unit
 - 's' -> int
   overall number of minted credentials

# Assets
Asset identifiers are opaque 32-byte values chosen by asset creators. Supply
of every asset only ever changes from 0 to 1.
*/
