package domain

import "errors"

// ErrTransportClosed is returned by Send once the connection is gone. The
// caller reports it as a disconnect and drops the frame; nothing is queued.
var ErrTransportClosed = errors.New("transport closed")

// Transport is the persistent connection to the relay. Send marshals one
// frame and writes it; it is fire-and-forget, no acknowledgement is awaited.
type Transport interface {
	Send(v any) error
	Close() error
}

// ConnState is reported to the host when the relay connection changes.
type ConnState string

const (
	StateConnected    ConnState = "connected"
	StateDisconnected ConnState = "disconnected"
)

// Host is the surface the session core needs from its embedding UI layer.
// Rendering, commands, and everything else interactive live behind it.
type Host interface {
	// OnSystemNotice reports session-level events and recoverable errors.
	OnSystemNotice(text string)

	// OnPeerMessage delivers one decrypted message from a peer.
	OnPeerMessage(senderID, plaintext string)

	// OnConnectionStateChange reports relay connectivity transitions.
	OnConnectionStateChange(state ConnState)
}
