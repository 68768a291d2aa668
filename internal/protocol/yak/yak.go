package yak

import (
	"crypto/rand"
	"math/big"

	"github.com/samber/oops"
)

// PublicSize is the wire width of a public value and of derived key
// material, in bytes.
const PublicSize = 128

// KeyExchange holds one peer's secret exponents: a long-term exponent
// generated once per process and an ephemeral exponent regenerated by
// every StartSession. Neither is ever transmitted.
type KeyExchange struct {
	longTerm  *big.Int
	ephemeral *big.Int
}

// New generates a fresh long-term exponent and returns an exchange with
// no session started.
func New() (*KeyExchange, error) {
	lt, err := randomExponent()
	if err != nil {
		return nil, err
	}
	return &KeyExchange{
		longTerm:  lt,
		ephemeral: new(big.Int),
	}, nil
}

// StartSession draws a new ephemeral exponent, reduced modulo the prime,
// and returns the public value to transmit to the peer:
// generator^(longTerm+ephemeral) mod prime.
func (kx *KeyExchange) StartSession() (*big.Int, error) {
	e, err := randomExponent()
	if err != nil {
		return nil, err
	}
	p, g := field()
	kx.ephemeral = e.Mod(e, p)
	return new(big.Int).Exp(g, kx.exponent(), p), nil
}

// ComputeShared derives the session key material from the peer's public
// value: peerPublic^(longTerm+ephemeral) mod prime. Both peers arrive at
// the same value because exponentiation in the field commutes. The result
// keys the stream ciphers directly; nothing confirms in-band that the two
// derivations matched.
func (kx *KeyExchange) ComputeShared(peerPublic *big.Int) *big.Int {
	p, _ := field()
	return new(big.Int).Exp(peerPublic, kx.exponent(), p)
}

// LongTermPublic returns generator^longTerm mod prime, the stable public
// face of this process. It is never sent; it exists for out-of-band
// display.
func (kx *KeyExchange) LongTermPublic() *big.Int {
	p, g := field()
	return new(big.Int).Exp(g, kx.longTerm, p)
}

func (kx *KeyExchange) exponent() *big.Int {
	return new(big.Int).Add(kx.longTerm, kx.ephemeral)
}

// randomExponent draws a uniform 1024-bit value from the system CSPRNG.
func randomExponent() (*big.Int, error) {
	buf := make([]byte, PublicSize)
	if _, err := rand.Read(buf); err != nil {
		return nil, oops.Wrapf(err, "yak: drawing random exponent")
	}
	return DecodePublic(buf), nil
}
