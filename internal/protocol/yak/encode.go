package yak

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

// EncodePublic renders v as the fixed 128-byte little-endian wire form.
// Values are at most 1024 bits, so the encoding never truncates.
func EncodePublic(v *big.Int) [PublicSize]byte {
	var out [PublicSize]byte
	be := v.Bytes() // big-endian, minimal width
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// DecodePublic reads a little-endian value of up to PublicSize bytes.
func DecodePublic(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// KeyBytes derives the cipher key from a shared secret: the same fixed
// little-endian rendering used on the wire, used directly with no further
// derivation.
func KeyBytes(secret *big.Int) [PublicSize]byte {
	return EncodePublic(secret)
}

// Fingerprint returns a short hex fingerprint of a field value, for
// out-of-band comparison between peers.
func Fingerprint(v *big.Int) string {
	enc := EncodePublic(v)
	sum := sha256.Sum256(enc[:])
	return hex.EncodeToString(sum[:10])
}
