// Package ipc implements the Unix-domain socket protocol of §4.8: a
// fixed-capacity command dispatch table, one-shot text request/response,
// and event-streaming subscriber promotion. Grounded on the teacher's
// internal/ipc socket server (accept loop, per-connection goroutine,
// Start/Stop lifecycle) generalized from its protobuf framing to the
// spec's line-oriented text protocol.
package ipc

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/swl-wm/swl/internal/eventbus"
)

// Server accepts connections on a Unix socket and dispatches each
// request line against a CommandTable.
type Server struct {
	mu       sync.Mutex
	listener net.Listener
	path     string
	commands *CommandTable
	bus      *eventbus.Bus
	subs     *subscriberTable
	wg       sync.WaitGroup
	done     chan struct{}
	running  bool
}

// NewServer builds a Server listening at SocketPath()'s resolution and
// dispatching through commands.
func NewServer(commands *CommandTable, bus *eventbus.Bus) *Server {
	return &Server{
		commands: commands,
		bus:      bus,
		subs:     newSubscriberTable(),
		path:     SocketPath(),
	}
}

// SocketPath resolves the socket location: $SWL_SOCKET, then
// $XDG_RUNTIME_DIR/swl.sock, then /tmp/swl.sock. Grounded on §6's
// "Unix-socket IPC" exposed-interface entry.
func SocketPath() string {
	if p := os.Getenv("SWL_SOCKET"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "swl.sock")
	}
	return filepath.Join(os.TempDir(), "swl.sock")
}

// Start removes any stale socket file, binds the listener, and begins
// accepting connections on a background goroutine.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("ipc: removing stale socket: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ipc: creating socket directory: %w", err)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("ipc: listening on %s: %w", s.path, err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("ipc: setting socket permissions: %w", err)
	}

	s.listener = listener
	s.done = make(chan struct{})
	s.running = true

	s.wg.Add(1)
	go s.acceptLoop()

	log.Info("ipc: listening", "path", s.path)
	return nil
}

// Stop closes the listener, waits for every in-flight connection
// goroutine to exit, and removes the socket file.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.Close()
	}
	s.wg.Wait()
	os.RemoveAll(s.path)
	log.Info("ipc: stopped")
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Error("ipc: accept failed", "err", err)
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection processes one connection's first request line. A
// command response that does not set KeepOpen closes the connection
// immediately afterward, matching "one connection, one text request".
// KeepOpen promotes it to a subscriber, after which the connection
// goroutine blocks on reads purely to detect close — the subscriber
// table's event-bus callback does all further writing.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil {
		conn.Close()
		return
	}

	resp, dispatchErr := s.dispatch(strings.TrimRight(line, "\r\n"))
	if dispatchErr != nil {
		fmt.Fprintln(conn, dispatchErr.Error())
		conn.Close()
		return
	}
	fmt.Fprintln(conn, resp.Output)

	if !resp.KeepOpen {
		conn.Close()
		return
	}

	sub, err := s.subs.add(s.bus, conn, resp.EventMask)
	if err != nil {
		conn.Close()
		return
	}

	// Block until the peer closes the connection; reads are otherwise
	// unused once promoted.
	buf := make([]byte, 1)
	for {
		if _, err := conn.Read(buf); err != nil {
			break
		}
	}
	s.subs.remove(s.bus, sub)
	conn.Close()
}

// dispatch splits name from its argument on the first space and
// invokes the registered CommandFunc. An unknown command name is
// reported as an error response rather than a protocol error.
func (s *Server) dispatch(request string) (Response, error) {
	name, arg, _ := strings.Cut(request, " ")
	fn, ok := s.commands.Get(name)
	if !ok {
		return Response{}, fmt.Errorf("unknown command: %s", name)
	}
	return fn(arg)
}

// SubscriberCount reports how many connections are currently
// promoted, for introspection and tests.
func (s *Server) SubscriberCount() int { return s.subs.count() }
