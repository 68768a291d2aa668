package cipher

import "github.com/samber/oops"

// dropLen is the number of leading keystream bytes discarded after key
// scheduling. The early output of the generator is biased toward the key,
// so it is never used for traffic.
const dropLen = 3072

// Stream is a symmetric keystream generator. One instance keys one
// direction of one session; the two directions of a session must use
// separate instances, since each instance only advances on the traffic
// it processes.
//
// Before Initialize is called a Stream passes data through unchanged,
// which is what lets the handshake packet travel before any key exists.
type Stream struct {
	state [256]byte
	i, j  uint8
	ready bool
}

// Initialize builds the internal permutation from key, resets both
// cursors, and discards the first dropLen keystream bytes. Calling it
// again rekeys the stream from scratch.
func (s *Stream) Initialize(key []byte) error {
	if len(key) == 0 {
		return oops.Errorf("cipher: key must not be empty")
	}

	for i := range s.state {
		s.state[i] = byte(i)
	}

	var j uint8
	for i := 0; i < 256; i++ {
		j += s.state[i] + key[i%len(key)]
		s.state[i], s.state[j] = s.state[j], s.state[i]
	}

	s.i, s.j = 0, 0
	s.ready = true

	for n := 0; n < dropLen; n++ {
		s.next()
	}
	return nil
}

// Ready reports whether Initialize has been called.
func (s *Stream) Ready() bool {
	return s.ready
}

// Process XORs buf in place with the next len(buf) keystream bytes.
// Encryption and decryption are the same operation: a second Stream
// initialized with the same key and fed the same byte positions undoes
// the first. On an uninitialized Stream it is a no-op.
func (s *Stream) Process(buf []byte) {
	if !s.ready {
		return
	}
	for k := range buf {
		buf[k] ^= s.next()
	}
}

func (s *Stream) next() byte {
	s.i++
	s.j += s.state[s.i]
	s.state[s.i], s.state[s.j] = s.state[s.j], s.state[s.i]
	return s.state[s.state[s.i]+s.state[s.j]]
}
