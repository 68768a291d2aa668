// Package session multiplexes handshake and chat traffic over one
// non-blocking TCP connection.
//
// # Overview
//
// An Endpoint owns a listener, a key-agreement state, and at most one
// Session. A Session moves through two phases: Unsecured, immediately
// after accept or connect, where only the first Acknowledge is
// meaningful and travels in the clear; and Secured, after the shared
// secret keys both cipher directions, where Message and Leave flow
// encrypted. Accept and connect are symmetric: whichever side
// establishes the socket sends the first Acknowledge.
//
// # Driving
//
// Everything is poll-driven and single-threaded. A loop calls
// AcceptIfIdle, then Poll until it returns false, then yields. Every
// accept and read is armed with a millisecond deadline, so nothing
// blocks the loop for longer than that; an idle peer is tolerated
// indefinitely.
//
// # Failure behavior
//
// There is no in-band confirmation that both sides derived the same key.
// When keys mismatch, later traffic decrypts to garbage that fails tag or
// UTF-8 checks; the session is dropped on an unknown tag because the
// stream has no resynchronization point. Write failures and EOF terminate
// the session; bind, accept, and dial failures are recoverable and leave
// the endpoint usable.
package session
