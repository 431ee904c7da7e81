package randomness

import (
	crand "crypto/rand"
	"math/rand" // want `import of math/rand: use crypto/rand`
)

func Pick(n int) int {
	_ = crand.Reader
	return rand.Intn(n)
}
