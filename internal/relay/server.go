package relay

import (
	"bufio"
	"net"
	"sync"

	"gopkg.in/op/go-logging.v1"
)

// sendQueueDepth bounds each client's outbound queue. A client that cannot
// drain it fast enough loses frames rather than stalling everyone else;
// delivery is best-effort by contract.
const sendQueueDepth = 64

type remote struct {
	conn net.Conn
	send chan []byte
}

// Server is the broadcast hub. Every inbound line is forwarded verbatim to
// every connected client, the sender included; the relay never parses or
// stores frame contents.
type Server struct {
	log *logging.Logger
	ln  net.Listener

	mu      sync.Mutex
	remotes map[*remote]struct{}

	haltCh   chan struct{}
	haltOnce sync.Once
	wg       sync.WaitGroup
}

// NewServer returns an unstarted hub.
func NewServer(log *logging.Logger) *Server {
	return &Server{
		log:     log,
		remotes: make(map[*remote]struct{}),
		haltCh:  make(chan struct{}),
	}
}

// Listen binds the TCP listener.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.log.Noticef("relay listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, for tests and logs.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Serve accepts connections until Halt. Each connection gets a reader and a
// writer goroutine; the single reader preserves per-sender FIFO.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-s.haltCh:
				return nil
			default:
				return err
			}
		}

		r := &remote{conn: conn, send: make(chan []byte, sendQueueDepth)}
		s.mu.Lock()
		s.remotes[r] = struct{}{}
		n := len(s.remotes)
		s.mu.Unlock()
		s.log.Noticef("client connected from %s (%d online)", conn.RemoteAddr(), n)

		s.wg.Add(2)
		go s.readLoop(r)
		go s.writeLoop(r)
	}
}

// Halt stops accepting, disconnects everyone, and waits for the per-client
// goroutines to drain.
func (s *Server) Halt() {
	s.haltOnce.Do(func() {
		close(s.haltCh)
		if s.ln != nil {
			s.ln.Close()
		}
		s.mu.Lock()
		for r := range s.remotes {
			r.conn.Close()
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
}

func (s *Server) readLoop(r *remote) {
	defer s.wg.Done()
	defer s.drop(r)

	sc := bufio.NewScanner(r.conn)
	sc.Buffer(make([]byte, 0, 4096), maxFrameBytes)
	for sc.Scan() {
		// Scanner reuses its buffer across lines; copy before fan-out.
		line := make([]byte, len(sc.Bytes())+1)
		copy(line, sc.Bytes())
		line[len(line)-1] = '\n'
		s.broadcast(line)
	}
	if err := sc.Err(); err != nil {
		s.log.Debugf("read from %s: %v", r.conn.RemoteAddr(), err)
	}
}

func (s *Server) writeLoop(r *remote) {
	defer s.wg.Done()
	for {
		select {
		case <-s.haltCh:
			return
		case line := <-r.send:
			if _, err := r.conn.Write(line); err != nil {
				s.drop(r)
				return
			}
		}
	}
}

// broadcast fans one line out to every connected client, the sender
// included. A full queue drops the frame for that client only.
func (s *Server) broadcast(line []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := range s.remotes {
		select {
		case r.send <- line:
		default:
			s.log.Warningf("dropping frame for slow client %s", r.conn.RemoteAddr())
		}
	}
}

func (s *Server) drop(r *remote) {
	s.mu.Lock()
	_, present := s.remotes[r]
	delete(s.remotes, r)
	n := len(s.remotes)
	s.mu.Unlock()
	if present {
		r.conn.Close()
		s.log.Noticef("client %s disconnected (%d online)", r.conn.RemoteAddr(), n)
	}
}
