package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Gen returns a human-readable code like "VND-7K2Q9A".
func Gen(prefix string) string {
	out := make([]byte, 6)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			// crypto/rand failing means the platform is broken; fall back to 'A'
			out[i] = 'A'
			continue
		}
		out[i] = alphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s", prefix, out)
}
