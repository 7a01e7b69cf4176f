package workflow

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CredentialLength satisfies the directory's complexity policy together with
// the four-class alphabet below.
const CredentialLength = 12

const credentialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789" +
	"!@#$%&*?"

// NewCredential draws a transient password: CredentialLength independent
// uniform picks from the combined alphabet, in draw order. The credential is
// never persisted and the account is created with a force-change flag.
func NewCredential() (string, error) {
	max := big.NewInt(int64(len(credentialAlphabet)))
	buf := make([]byte, CredentialLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate credential: %w", err)
		}
		buf[i] = credentialAlphabet[n.Int64()]
	}
	return string(buf), nil
}
