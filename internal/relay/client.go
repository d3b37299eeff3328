package relay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"gopkg.in/op/go-logging.v1"

	"onyx/internal/domain"
)

// maxFrameBytes bounds one wire line. A handshake is ~2 KiB; chat frames
// grow with recipient count and message size, so leave generous headroom.
const maxFrameBytes = 1 << 20

// FrameSink consumes the client's inbound side. Frames arrive in the order
// the relay delivered them.
type FrameSink interface {
	OnFrame(domain.Frame)
	ConnectionDown(err error)
}

// Client is the persistent relay connection. Writes are serialized by a
// mutex; reads happen on the single ReadLoop goroutine.
type Client struct {
	log  *logging.Logger
	conn net.Conn

	mu     sync.Mutex
	closed bool
}

var _ domain.Transport = (*Client)(nil)

// Dial opens the relay connection. The address comes from local
// configuration; nothing is negotiated.
func Dial(addr string, log *logging.Logger) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", addr, err)
	}
	return &Client{log: log, conn: conn}, nil
}

// Send marshals v as one JSON line and writes it. Fire-and-forget: no
// acknowledgement is awaited. After Close it returns
// domain.ErrTransportClosed and the frame is dropped.
func (c *Client) Send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	b = append(b, '\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrTransportClosed
	}
	if _, err := c.conn.Write(b); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close tears the connection down. In-flight reads unblock; subsequent
// Sends fail with domain.ErrTransportClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.conn.Close()
}

// ReadLoop scans wire lines, parses each once at this boundary, and feeds
// the sink in arrival order. Malformed lines are logged and dropped; they
// never abort the loop. Runs until the connection ends, then reports
// ConnectionDown exactly once. Call it on its own goroutine.
func (c *Client) ReadLoop(sink FrameSink) {
	sc := bufio.NewScanner(c.conn)
	sc.Buffer(make([]byte, 0, 4096), maxFrameBytes)

	for sc.Scan() {
		frame, err := domain.ParseFrame(sc.Bytes())
		if err != nil {
			c.log.Warningf("dropping inbound line: %v", err)
			continue
		}
		sink.OnFrame(frame)
	}

	err := sc.Err()

	c.mu.Lock()
	wasClosed := c.closed
	c.closed = true
	c.mu.Unlock()

	if wasClosed {
		// Local Close; not a transport failure.
		sink.ConnectionDown(nil)
		return
	}
	c.conn.Close()
	sink.ConnectionDown(err)
}
