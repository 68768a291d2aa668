// Package cipher implements the symmetric stream cipher that protects
// session traffic.
//
// # Overview
//
// A Stream holds a 256-entry byte permutation and two cursors. Initialize
// schedules the permutation from a key with the standard swap pass, then
// discards the first 3072 keystream bytes before any are applied to real
// traffic. Process XORs a buffer in place with the keystream and is its
// own inverse.
//
// # Usage
//
// Every session keys two independent Streams, one per direction. Sharing
// one instance between directions desynchronizes the generators as soon
// as both peers write concurrently, because each peer's generator only
// advances on its own traffic.
//
// # Security notes
//
// The keystream provides confidentiality only; there is no integrity
// protection, and a flipped ciphertext bit flips the same plaintext bit.
package cipher
