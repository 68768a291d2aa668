// Package store persists chat history under the home directory.
//
// The transcript is an append-only JSON-lines file. Key material is
// deliberately never stored: both secret exponents live only for the
// process lifetime.
package store
