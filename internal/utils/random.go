package utils

import (
	cryptorand "crypto/rand"
	mathrand "math/rand"
	"sync"
	"time"
)

// Rand is the randomness used by the allocator and upgrade engine.
// Injected so coin flips and seat draws are scriptable in tests.
type Rand interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Bool returns a fair coin flip.
	Bool() bool
}

type lockedRand struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Bool() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(2) == 0
}

// DefaultRand is safe for concurrent use.
var DefaultRand Rand = &lockedRand{r: mathrand.New(mathrand.NewSource(time.Now().UnixNano()))}

// NewSeededRand returns a deterministic Rand for tests.
func NewSeededRand(seed int64) Rand {
	return &lockedRand{r: mathrand.New(mathrand.NewSource(seed))}
}

const pnrCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePNR returns "PNR" plus n random uppercase alphanumerics.
func GeneratePNR(n int) (string, error) {
	code := make([]byte, n)
	if _, err := cryptorand.Read(code); err != nil {
		return "", err
	}
	for i := 0; i < n; i++ {
		code[i] = pnrCharset[int(code[i])%len(pnrCharset)]
	}
	return "PNR" + string(code), nil
}
