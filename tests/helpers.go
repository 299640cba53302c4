package tests

import (
	"math/rand"

	"github.com/google/uuid"
)

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// randomUserName returns a unique user name that fits the ledger's length
// bound.
func randomUserName() string {
	return "user-" + uuid.NewString()[:13]
}
