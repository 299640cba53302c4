package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
)

// MintAuthorityLabel is the fixed label mint authorities are derived from.
const MintAuthorityLabel = "mint_authority"

// maxAuthorityBump is the first bump value tried by DeriveAuthority.
const maxAuthorityBump = 255

// AuthorityCandidate hashes label, program identity and bump into a Hash160
// address. The result has no known preimage key: it is a RIPEMD160-SHA256
// digest, not a hash of any verification script.
func AuthorityCandidate(label string, program interop.Hash160, bump int) interop.Hash160 {
	seed := append([]byte(label), program...)
	seed = append(seed, byte(bump))

	return crypto.Ripemd160(crypto.Sha256(seed))
}

// DeriveAuthority computes a keyless signing authority for the given label and
// program identity. It returns the authority address together with the bump
// value the address was derived with. The caller presenting the bump lets any
// verifier re-derive the same address from the calling program's identity, so
// the authority is proved by recomputation instead of a signature.
//
// The derivation is deterministic and stores nothing. A candidate address
// occupied by a deployed contract is skipped: the accepted address is
// guaranteed to have neither a key nor a script behind it.
func DeriveAuthority(label string, program interop.Hash160) (interop.Hash160, int) {
	for bump := maxAuthorityBump; bump >= 0; bump-- {
		candidate := AuthorityCandidate(label, program, bump)
		if management.GetContract(candidate) == nil {
			return candidate, bump
		}
	}

	panic("no derivable authority for label " + label)
}
