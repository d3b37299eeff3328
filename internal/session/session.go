package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/op/go-logging.v1"

	"onyx/internal/crypto"
	"onyx/internal/domain"
	"onyx/internal/peers"
	"onyx/internal/protocol/envelope"
	"onyx/internal/protocol/handshake"
)

// NewIdentity generates this session's identity: a random UUIDv4 id and a
// fresh RSA key pair with its public half exported to PEM. Called exactly
// once per session, before connecting; failure is fatal to the session.
func NewIdentity() (*domain.Identity, error) {
	priv, err := crypto.GenerateRSA()
	if err != nil {
		return nil, err
	}
	pem, err := crypto.MarshalPublicPEM(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("export public key: %w", err)
	}
	return &domain.Identity{
		ID:        uuid.New().String(),
		Priv:      priv,
		PublicPEM: pem,
	}, nil
}

type workerOp interface{}

type opConnUp struct{}

type opConnDown struct {
	err error
}

type opFrame struct {
	frame domain.Frame
}

type opSubmit struct {
	text string
}

// Session is the controller tying identity, directory, handshake protocol,
// and envelope engine to one relay connection.
type Session struct {
	identity   *domain.Identity
	directory  *peers.Directory
	transport  domain.Transport
	host       domain.Host
	handshakes *handshake.Handler
	log        *logging.Logger

	opCh     chan workerOp
	haltCh   chan struct{}
	doneCh   chan struct{}
	haltOnce sync.Once
}

// New builds a session around an already-generated identity. Start must be
// called before any events are delivered.
func New(id *domain.Identity, dir *peers.Directory, tr domain.Transport, host domain.Host, log *logging.Logger) *Session {
	s := &Session{
		identity:  id,
		directory: dir,
		transport: tr,
		host:      host,
		log:       log,
		opCh:      make(chan workerOp, 64),
		haltCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	s.handshakes = handshake.New(id, dir, tr, host, log)
	return s
}

// Start launches the worker goroutine.
func (s *Session) Start() {
	go s.worker()
}

// Halt closes the transport and stops the worker. An operation already in
// flight is allowed to finish; its sends fail as disconnects and are
// reported, not retried.
func (s *Session) Halt() {
	s.haltOnce.Do(func() {
		close(s.haltCh)
		if err := s.transport.Close(); err != nil {
			s.log.Debugf("transport close: %v", err)
		}
	})
	<-s.doneCh
}

// ConnectionUp signals that the transport is open. The session announces
// itself immediately: without the bootstrap handshake no peer ever learns
// our key.
func (s *Session) ConnectionUp() {
	s.enqueue(opConnUp{})
}

// ConnectionDown signals that the transport is gone.
func (s *Session) ConnectionDown(err error) {
	s.enqueue(opConnDown{err: err})
}

// OnFrame hands one parsed inbound frame to the worker. Frames are processed
// in delivery order, one at a time.
func (s *Session) OnFrame(frame domain.Frame) {
	s.enqueue(opFrame{frame: frame})
}

// Submit queues one local plaintext for encryption and broadcast.
func (s *Session) Submit(text string) {
	s.enqueue(opSubmit{text: text})
}

func (s *Session) enqueue(op workerOp) {
	select {
	case s.opCh <- op:
	case <-s.haltCh:
	}
}

func (s *Session) worker() {
	defer close(s.doneCh)
	for {
		select {
		case <-s.haltCh:
			return
		case op := <-s.opCh:
			switch op := op.(type) {
			case opConnUp:
				s.onConnUp()
			case opConnDown:
				s.onConnDown(op.err)
			case opFrame:
				s.onFrame(op.frame)
			case opSubmit:
				s.onSubmit(op.text)
			default:
				s.log.Errorf("unknown worker op %T", op)
			}
		}
	}
}

func (s *Session) onConnUp() {
	s.host.OnConnectionStateChange(domain.StateConnected)
	if err := s.transport.Send(domain.NewHandshake(s.identity)); err != nil {
		s.log.Errorf("announce: %v", err)
		s.host.OnSystemNotice("Could not announce identity: " + err.Error())
		return
	}
	s.host.OnSystemNotice(fmt.Sprintf("Announced as %s", domain.ShortID(s.identity.ID)))
}

func (s *Session) onConnDown(err error) {
	if err != nil {
		s.log.Noticef("connection down: %v", err)
	}
	s.host.OnConnectionStateChange(domain.StateDisconnected)
}

func (s *Session) onFrame(frame domain.Frame) {
	switch {
	case frame.Handshake != nil:
		s.handshakes.Handle(frame.Handshake)
	case frame.Chat != nil:
		s.onChat(frame.Chat)
	default:
		s.log.Debugf("dropping frame of unknown type %q", frame.Unknown)
	}
}

func (s *Session) onChat(c *domain.ChatFrame) {
	// The relay echoes our own frames back; suppress on sender id before
	// any decrypt attempt so the echo is never mistaken for an envelope
	// that excludes us.
	if c.SenderID == s.identity.ID {
		return
	}

	plaintext, err := envelope.Open(c.Payload, s.identity.ID, s.identity.Priv)
	switch {
	case err == nil:
		s.host.OnPeerMessage(c.SenderID, plaintext)
	case errors.Is(err, envelope.ErrNoKeyForRecipient):
		// Overheard traffic addressed to other peers. Expected; muted.
		s.log.Debugf("msg from %s not addressed to us", domain.ShortID(c.SenderID))
		s.host.OnSystemNotice(fmt.Sprintf("Unreadable message from %s", domain.ShortID(c.SenderID)))
	default:
		s.log.Warningf("decrypt from %s: %v", domain.ShortID(c.SenderID), err)
		s.host.OnSystemNotice(fmt.Sprintf("Could not decrypt message from %s", domain.ShortID(c.SenderID)))
	}
}

func (s *Session) onSubmit(text string) {
	recipients := s.directory.Snapshot()
	if len(recipients) == 0 {
		s.host.OnSystemNotice("No peers connected: message sent, but nobody can read it")
	}

	env, err := envelope.Seal(text, recipients)
	if err != nil {
		s.log.Errorf("seal: %v", err)
		s.host.OnSystemNotice("Send failed: " + err.Error())
		return
	}

	frame := domain.ChatFrame{
		Type:     domain.TypeMsg,
		SenderID: s.identity.ID,
		Payload:  env,
	}
	if err := s.transport.Send(frame); err != nil {
		s.log.Warningf("send: %v", err)
		s.host.OnSystemNotice("Send failed: " + err.Error())
	}
}
