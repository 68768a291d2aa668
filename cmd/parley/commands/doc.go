// Package commands defines the parley CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - chat     Bind the listen port, handshake with a peer, exchange messages
//   - history  Print the stored chat transcript
//
// # Implementation
//
// The root command loads configuration and builds the shared wiring (the
// logger, this process's key-agreement state, and the transcript store)
// before any subcommand runs. The chat command owns the poll loop: the
// network core is single-threaded and non-blocking, so chat ticks it on an
// interval and feeds it stdin lines from one reader goroutine.
package commands
