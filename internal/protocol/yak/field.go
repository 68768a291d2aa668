package yak

import (
	"math/big"
	"sync"
)

// primeDecimal is the shared field modulus. Both peers carry the same
// constant by construction; it is never negotiated or sent on the wire.
const primeDecimal = "2666059058123518101548143651795902542003950378111894701790280012124011918017464857102059640892783997"

var (
	fieldOnce sync.Once
	prime     *big.Int
	generator *big.Int
)

// field returns the process-wide modulus and generator. They are built
// exactly once and must be treated as read-only by every caller.
func field() (p, g *big.Int) {
	fieldOnce.Do(func() {
		p, ok := new(big.Int).SetString(primeDecimal, 10)
		if !ok {
			panic("yak: invalid prime constant")
		}
		prime = p
		generator = big.NewInt(2)
	})
	return prime, generator
}
