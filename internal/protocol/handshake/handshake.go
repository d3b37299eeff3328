package handshake

import (
	"fmt"

	"gopkg.in/op/go-logging.v1"

	"onyx/internal/domain"
	"onyx/internal/peers"
)

// Handler applies the handshake transition rule. It carries no state of its
// own; everything lives in the directory.
type Handler struct {
	identity  *domain.Identity
	directory *peers.Directory
	transport domain.Transport
	host      domain.Host
	log       *logging.Logger
}

// New returns a handler bound to this session's identity and directory.
func New(id *domain.Identity, dir *peers.Directory, tr domain.Transport, host domain.Host, log *logging.Logger) *Handler {
	return &Handler{
		identity:  id,
		directory: dir,
		transport: tr,
		host:      host,
		log:       log,
	}
}

// Handle processes one inbound handshake frame:
//
//  1. Our own announcement echoed back by the relay is discarded.
//  2. An already-known sender is discarded: no re-import, no re-reply, so a
//     repeated-handshake flood cannot trigger unbounded reply traffic.
//  3. A new sender's key is imported and our own announcement is sent back,
//     so the late joiner's directory learns about us too.
//
// Import failures are reported to the host and otherwise dropped; the peer
// is simply never a recipient. No handshake is retried or timed out.
func (h *Handler) Handle(hs *domain.Handshake) {
	if hs.SenderID == h.identity.ID {
		return
	}
	if h.directory.Has(hs.SenderID) {
		h.log.Debugf("handshake from known peer %s ignored", domain.ShortID(hs.SenderID))
		return
	}

	if err := h.directory.Insert(hs.SenderID, hs.PubKey); err != nil {
		h.log.Warningf("key import for %s: %v", domain.ShortID(hs.SenderID), err)
		h.host.OnSystemNotice(fmt.Sprintf("Ignoring peer %s: invalid public key", domain.ShortID(hs.SenderID)))
		return
	}

	h.host.OnSystemNotice(fmt.Sprintf("New peer: %s", domain.ShortID(hs.SenderID)))

	if err := h.transport.Send(domain.NewHandshake(h.identity)); err != nil {
		h.log.Warningf("handshake reply to %s: %v", domain.ShortID(hs.SenderID), err)
		h.host.OnSystemNotice("Handshake reply failed: " + err.Error())
	}
}
