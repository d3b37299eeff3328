package commands

import (
	"fmt"
	"io"
	"sync"
	"time"

	"onyx/internal/domain"
)

// terminalHost renders session events as plain lines. Notices come from the
// session worker while the prompt loop owns stdin, so writes are serialized
// with a mutex.
type terminalHost struct {
	mu sync.Mutex
	w  io.Writer
}

var _ domain.Host = (*terminalHost)(nil)

func newTerminalHost(w io.Writer) *terminalHost {
	return &terminalHost{w: w}
}

func (h *terminalHost) OnSystemNotice(text string) {
	h.printf("%s -- %s\n", timestamp(), text)
}

func (h *terminalHost) OnPeerMessage(senderID, plaintext string) {
	h.printf("%s <%s> %s\n", timestamp(), domain.ShortID(senderID), plaintext)
}

func (h *terminalHost) OnConnectionStateChange(state domain.ConnState) {
	h.printf("%s -- relay %s\n", timestamp(), state)
}

func (h *terminalHost) printf(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintf(h.w, format, args...)
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
