// Package wire frames the packets two peers exchange over a session.
//
// # Wire format
//
// Every packet is one tag byte followed by a kind-specific payload:
//
//	tag 0  Acknowledge  128 bytes, little-endian public value
//	tag 1  Message      uint64 little-endian length, then UTF-8 text
//	tag 2  Leave        no payload
//
// The length field is fixed at 64 bits on every platform so that peers
// built for different architectures interoperate.
//
// # Decoding
//
// TryDecode is written for a stream that arrives in arbitrary slices: an
// incomplete packet is "not yet available" rather than an error, and a
// successful decode reports exactly how many bytes it consumed. The
// codec never buffers; callers own the buffer and its advancement.
package wire
