package session

import (
	"errors"
	"net"
	"time"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"parley/internal/protocol/yak"
	"parley/internal/wire"
)

// dialTimeout bounds Connect. Dialing is the one transport call that
// cannot make progress within an ioWait slice, so it gets its own bound.
const dialTimeout = 3 * time.Second

// EventKind identifies what a Poll result means.
type EventKind int

const (
	// HandshakeCompleted: both key derivations ran locally and the
	// session is secured. Nothing confirms the peer derived the same
	// key; a mismatch shows up later as decode failures.
	HandshakeCompleted EventKind = iota

	// MessageReceived: the peer sent chat text, carried in Event.Text.
	MessageReceived

	// PeerLeft: the peer sent Leave, closed the connection, or the
	// transport failed. The session has already been released.
	PeerLeft
)

// Event is one observable session transition, surfaced by Poll.
type Event struct {
	Kind EventKind
	Text string
}

// Endpoint is the caller-facing surface: one listener, one key-agreement
// state, and at most one active session, held as a nullable field so the
// single-session invariant is structural. It is not safe for concurrent
// use; one poll loop owns it.
type Endpoint struct {
	listener *net.TCPListener
	kx       *yak.KeyExchange
	active   *Session
	events   []Event
	log      logrus.FieldLogger
}

// Listen binds the local endpoint. The returned Endpoint accepts nothing
// until AcceptIfIdle is polled.
func Listen(addr string, kx *yak.KeyExchange, log logrus.FieldLogger) (*Endpoint, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, oops.Wrapf(err, "session: binding %s", addr)
	}
	return &Endpoint{
		listener: l.(*net.TCPListener),
		kx:       kx,
		log:      log.WithField("listen", l.Addr().String()),
	}, nil
}

// Addr returns the bound listen address.
func (e *Endpoint) Addr() net.Addr {
	return e.listener.Addr()
}

// Active reports whether a session currently exists.
func (e *Endpoint) Active() bool {
	return e.active != nil
}

// Secured reports whether the active session has completed key setup.
func (e *Endpoint) Secured() bool {
	return e.active != nil && e.active.secured
}

// AcceptIfIdle takes at most one pending inbound connection, and only
// when no session is active; while one is, new attempts are left alone.
// On success the endpoint starts a fresh key-agreement session and sends
// the Acknowledge in the clear, since no cipher is keyed yet. Accept
// failures are recoverable: they are logged and the listener stays
// usable.
func (e *Endpoint) AcceptIfIdle() {
	if e.active != nil {
		return
	}
	if err := e.listener.SetDeadline(time.Now().Add(ioWait)); err != nil {
		e.log.WithError(err).Warn("arming accept deadline failed")
		return
	}
	conn, err := e.listener.Accept()
	if err != nil {
		var ne net.Error
		if !errors.As(err, &ne) || !ne.Timeout() {
			e.log.WithError(err).Warn("accept failed")
		}
		return
	}
	if err := e.adopt(conn); err != nil {
		e.log.WithError(err).Warn("inbound session setup failed")
	}
}

// Connect dials addr and sets up the session exactly the way an accepted
// connection would: whichever side establishes the socket sends the first
// Acknowledge. A failed dial leaves the endpoint usable for another try.
func (e *Endpoint) Connect(addr string) error {
	if e.active != nil {
		return oops.Errorf("session: a session is already active")
	}
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return oops.Wrapf(err, "session: dialing %s", addr)
	}
	return e.adopt(conn)
}

// adopt wraps an established conn in a Session, starts a fresh ephemeral
// exchange, and transmits our public value.
func (e *Endpoint) adopt(conn net.Conn) error {
	s := newSession(conn, e.log)

	pub, err := e.kx.StartSession()
	if err != nil {
		s.close()
		return err
	}
	if err := s.writePacket(wire.Acknowledge{Public: yak.EncodePublic(pub)}); err != nil {
		s.close()
		return err
	}

	e.active = s
	s.log.Info("session established, public value sent")
	return nil
}

// Send encrypts text as a Message and writes it out. It refuses to send
// before the handshake completes: a Message under an unkeyed outbound
// state would desynchronize the peer's cipher unrecoverably. A write
// failure terminates the session.
func (e *Endpoint) Send(text string) error {
	if e.active == nil {
		return oops.Errorf("session: no active session")
	}
	if !e.active.secured {
		return oops.Errorf("session: handshake not completed yet")
	}
	if err := e.active.writePacket(wire.Message{Text: text}); err != nil {
		e.drop(err)
		return err
	}
	return nil
}

// Disconnect sends Leave under the current outbound state and releases
// the session. It is a no-op without one.
func (e *Endpoint) Disconnect() {
	if e.active == nil {
		return
	}
	if err := e.active.writePacket(wire.Leave{}); err != nil {
		e.log.WithError(err).Warn("leave not delivered")
	}
	e.release()
	e.log.Info("session closed")
}

// Close disconnects any session and stops listening.
func (e *Endpoint) Close() error {
	e.Disconnect()
	return e.listener.Close()
}

// Poll returns the next pending event, pumping the active session first
// if the queue is empty. The driving loop calls AcceptIfIdle, then Poll
// until it reports false, then yields.
func (e *Endpoint) Poll() (Event, bool) {
	if len(e.events) == 0 {
		e.pump()
	}
	if len(e.events) == 0 {
		return Event{}, false
	}
	ev := e.events[0]
	e.events = e.events[1:]
	return ev, true
}

// pump drains every packet the session has ready and turns them into
// queued events.
func (e *Endpoint) pump() {
	for e.active != nil {
		pkt, err := e.active.readPacket()
		if err != nil {
			e.drop(err)
			return
		}
		if pkt == nil {
			return
		}
		e.handle(pkt)
	}
}

// handle applies one decoded packet to the session state machine.
func (e *Endpoint) handle(pkt wire.Packet) {
	s := e.active
	switch p := pkt.(type) {
	case wire.Acknowledge:
		if s.secured {
			// A second Acknowledge decoded under the session key is
			// noise; rekeying from it would desync both directions.
			s.log.Warn("ignoring repeated acknowledge")
			return
		}
		secret := e.kx.ComputeShared(yak.DecodePublic(p.Public[:]))
		if err := s.secure(secret); err != nil {
			e.drop(err)
			return
		}
		s.log.WithField("key", yak.Fingerprint(secret)).Info("session secured")
		e.events = append(e.events, Event{Kind: HandshakeCompleted})

	case wire.Message:
		e.events = append(e.events, Event{Kind: MessageReceived, Text: p.Text})

	case wire.Leave:
		s.log.Info("peer left")
		e.release()
		e.events = append(e.events, Event{Kind: PeerLeft})
	}
}

// drop tears a session down after a fatal condition and surfaces the
// loss to the caller.
func (e *Endpoint) drop(err error) {
	e.log.WithError(err).Warn("session terminated")
	e.release()
	e.events = append(e.events, Event{Kind: PeerLeft})
}

// release closes and forgets the active session. Bytes still buffered
// but undecoded are discarded with it.
func (e *Endpoint) release() {
	if e.active == nil {
		return
	}
	e.active.close()
	e.active = nil
}
