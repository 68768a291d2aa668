package session

import (
	"errors"
	"math/big"
	"net"
	"time"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"parley/internal/cipher"
	"parley/internal/protocol/yak"
	"parley/internal/util/memzero"
	"parley/internal/wire"
)

// ioWait is how far in the future read and accept deadlines are armed.
// Long enough that data already queued in the kernel is returned, short
// enough that an idle peer never stalls the poll loop.
const ioWait = time.Millisecond

// Session owns one live connection: the conn itself, one cipher state per
// direction, and the buffer of bytes that have been decrypted but not yet
// deframed. It is created on accept or connect and exists until Leave is
// exchanged or the transport fails; nothing else touches its conn or
// cipher states for its entire lifetime.
type Session struct {
	conn    net.Conn
	out     cipher.Stream
	in      cipher.Stream
	buf     []byte
	scratch [4096]byte
	secured bool
	log     logrus.FieldLogger
}

func newSession(conn net.Conn, log logrus.FieldLogger) *Session {
	if tc, ok := conn.(*net.TCPConn); ok {
		// Frames are small and interactive; don't let Nagle batch them.
		_ = tc.SetNoDelay(true)
	}
	return &Session{
		conn: conn,
		log:  log.WithField("peer", conn.RemoteAddr().String()),
	}
}

// secure derives the cipher key from the shared secret and keys both
// directions. It runs exactly once per session; every packet after this
// point is encrypted.
func (s *Session) secure(secret *big.Int) error {
	if s.secured {
		return oops.Errorf("session: already secured")
	}
	key := yak.KeyBytes(secret)
	defer memzero.Zero(key[:])

	if err := s.out.Initialize(key[:]); err != nil {
		return err
	}
	if err := s.in.Initialize(key[:]); err != nil {
		return err
	}
	s.secured = true
	return nil
}

// writePacket encodes pkt into a scratch frame, encrypts it under the
// outbound state, and writes it in one call. No partial-write state is
// kept: the transport either takes the frame or the session is done.
func (s *Session) writePacket(pkt wire.Packet) error {
	frame := wire.Encode(pkt)
	s.out.Process(frame)
	if _, err := s.conn.Write(frame); err != nil {
		return oops.Wrapf(err, "session: writing %T", pkt)
	}
	return nil
}

// readPacket pulls any newly arrived bytes into the receive buffer,
// decrypts only that new span (earlier bytes were decrypted when they
// arrived), and attempts exactly one decode. It returns (nil, nil) when
// no complete packet is available yet; callers poll again later. A
// skippable decode failure (invalid text) consumes the offending packet
// and also reports nothing. Any returned error is fatal to the session.
func (s *Session) readPacket() (wire.Packet, error) {
	readErr := s.fill()

	pkt, consumed, err := wire.TryDecode(s.buf)
	switch {
	case errors.Is(err, wire.ErrInvalidText):
		s.log.WithError(err).Warn("discarding undecodable message")
		s.advance(consumed)
	case err != nil:
		return nil, err
	case pkt != nil:
		s.advance(consumed)
		return pkt, nil
	}

	return nil, readErr
}

// fill drains whatever the transport has ready right now. Reads are
// armed with ioWait: the deadline must sit slightly in the future,
// because the poller fails an already-expired deadline before touching
// the socket and would skip bytes queued in the kernel. A timeout means
// "nothing yet", not an error. Each new span is decrypted exactly once,
// in arrival order, under the inbound state.
func (s *Session) fill() error {
	if err := s.conn.SetReadDeadline(time.Now().Add(ioWait)); err != nil {
		return oops.Wrapf(err, "session: arming read deadline")
	}
	for {
		n, err := s.conn.Read(s.scratch[:])
		if n > 0 {
			mark := len(s.buf)
			s.buf = append(s.buf, s.scratch[:n]...)
			s.in.Process(s.buf[mark:])
		}
		if err == nil {
			continue
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil
		}
		return err
	}
}

// advance drops n consumed bytes from the front of the receive buffer.
func (s *Session) advance(n int) {
	kept := copy(s.buf, s.buf[n:])
	s.buf = s.buf[:kept]
}

func (s *Session) close() {
	_ = s.conn.Close()
}
