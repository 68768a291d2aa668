// Package yak implements the Diffie-Hellman-style key agreement that
// bootstraps an encrypted session between two directly connected peers.
//
// # Overview
//
// Both peers share a fixed prime modulus and generator, compiled in and
// identical everywhere. Each peer holds a long-term secret exponent
// (generated once per process) and an ephemeral secret exponent
// (regenerated per session). The transmitted public value is
//
//	generator ^ (longTerm + ephemeral) mod prime
//
// and the shared secret each side derives is
//
//	peerPublic ^ (longTerm + ephemeral) mod prime
//
// which both sides compute to the same field element. The secret's
// 128-byte little-endian rendering keys the stream ciphers directly.
//
// # Flows
//
//  1. Each peer calls StartSession when a connection is established and
//     sends the returned public value in the clear.
//  2. On receiving the peer's public value, each calls ComputeShared and
//     keys its ciphers with KeyBytes of the result.
//
// # Security notes
//
// The exchange is deliberately unauthenticated: nothing binds a public
// value to a peer identity, and an active adversary who intercepts the
// first exchange can substitute values and sit in the middle. There is
// also no in-band key confirmation; mismatched keys only surface later
// as garbled decodes. Both properties are part of the protocol, not
// accidents of this implementation.
package yak
