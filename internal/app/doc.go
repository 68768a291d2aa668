// Package app wires application dependencies for the CLI.
//
// It loads Config (flags over environment over an optional parley.yaml)
// and builds the logger, key-agreement state, and transcript store,
// exposing them via the Wire struct for commands to use.
package app
