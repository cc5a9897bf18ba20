// Package external implements a line-oriented protocol for driving the
// engine from other programs over TCP.
//
// Protocol overview:
// - Server listens on a TCP port
// - Client connects and sends one command per line
// - Positions are board IDs, 36-cell strings or '/'-separated rows
// - Each command gets exactly one response line; errors start with "Error:"
package external

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/yourusername/reversiengine/pkg/engine"
)

// ProtocolVersion is reported by the version command
const ProtocolVersion = "reversiengine external protocol 1.0"

// Server implements the external protocol server.
type Server struct {
	listener net.Listener
	mu       sync.Mutex
	running  bool
	options  ServerOptions
	wg       sync.WaitGroup
}

// ServerOptions configures the external protocol server.
type ServerOptions struct {
	Host          string // Host to bind to ("" = all interfaces)
	Port          int    // TCP port to listen on (0 = any free port)
	Depth         int    // Initial search depth for each connection
	PromptEnabled bool   // Send prompts after responses
}

// DefaultServerOptions returns sensible defaults.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		Port:          1234,
		Depth:         engine.DefaultDepth,
		PromptEnabled: true,
	}
}

// NewServer creates a new external protocol server.
func NewServer(opts ServerOptions) *Server {
	return &Server{options: opts}
}

// Start begins listening for connections.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server already running")
	}
	if _, err := engine.NewEngine(engine.Options{Depth: s.options.Depth}); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.options.Host, strconv.Itoa(s.options.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.running = true

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Addr returns the listening address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops accepting connections. Open connections finish their current
// command and close when the client disconnects.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	err := s.listener.Close()
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

// acceptLoop accepts incoming connections.
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			running := s.running
			s.mu.Unlock()
			if !running {
				return
			}
			log.Printf("external: accept: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single client connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	sess, err := NewSession(s.options.Depth)
	if err != nil {
		fmt.Fprintf(conn, "Error: %v\n", err)
		return
	}
	s.Serve(sess, conn, conn)
}

// Serve runs a session over r and w until exit or end of input.
func (s *Server) Serve(sess *Session, r io.Reader, w io.Writer) {
	reader := bufio.NewReader(r)

	if s.options.PromptEnabled {
		io.WriteString(w, "> ")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("external: read: %v", err)
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		io.WriteString(w, sess.ProcessCommand(line))

		if sess.Closed() {
			return
		}
		if s.options.PromptEnabled {
			io.WriteString(w, "> ")
		}
	}
}

// Session is the state of one connection: its engine and whether the
// client asked to exit.
type Session struct {
	engine *engine.Engine
	closed bool
}

// NewSession creates a session searching at depth
func NewSession(depth int) (*Session, error) {
	e, err := engine.NewEngine(engine.Options{Depth: depth})
	if err != nil {
		return nil, err
	}
	return &Session{engine: e}, nil
}

// Closed reports whether the client sent exit
func (sess *Session) Closed() bool {
	return sess.closed
}

// Depth returns the session's search depth
func (sess *Session) Depth() int {
	return sess.engine.Depth()
}

// ProcessCommand processes a single command and returns the response.
func (sess *Session) ProcessCommand(cmd string) string {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return "Error: empty command\n"
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "version":
		return ProtocolVersion + "\n"

	case "help":
		return helpResponse()

	case "exit", "quit":
		sess.closed = true
		return "Goodbye\n"

	case "set":
		return sess.handleSet(args)

	case "move", "place":
		return sess.handleMove(args)

	case "eval", "evaluate":
		return sess.handleEval(args)

	case "legal":
		return sess.handleLegal(args)

	case "show":
		return sess.handleShow(args)

	default:
		return fmt.Sprintf("Error: unknown command '%s'\n", command)
	}
}

// helpResponse returns help text.
func helpResponse() string {
	return `Available commands:
  version                - Show version information
  help                   - Show this help
  set depth <n>          - Set search depth (0-` + strconv.Itoa(engine.MaxDepth) + `)
  move <pos> <stone>     - Best placement for stone, or "pass"
  eval <pos> <stone>     - Static evaluation for stone
  legal <pos> <stone>    - Legal placements for stone
  show <pos>             - Print the board
  exit                   - Close connection
`
}

// handleSet handles the set command.
func (sess *Session) handleSet(args []string) string {
	if len(args) < 2 {
		return "Error: set requires option and value\n"
	}

	option := strings.ToLower(args[0])
	value := args[1]

	switch option {
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Sprintf("Error: depth must be 0-%d\n", engine.MaxDepth)
		}
		e, err := engine.NewEngine(engine.Options{Depth: depth})
		if err != nil {
			return fmt.Sprintf("Error: %v\n", err)
		}
		sess.engine = e
		return fmt.Sprintf("depth set to %d\n", depth)

	default:
		return fmt.Sprintf("Error: unknown option '%s'\n", option)
	}
}

// parsePositionArgs reads "<pos> <stone>"
func parsePositionArgs(args []string) (engine.Board, engine.Stone, error) {
	if len(args) != 2 {
		return engine.Board{}, engine.Empty, fmt.Errorf("expected <pos> <stone>")
	}
	b, err := ParsePosition(args[0])
	if err != nil {
		return b, engine.Empty, err
	}
	s, err := engine.ParseStone(args[1])
	if err != nil {
		return b, engine.Empty, err
	}
	return b, s, nil
}

// handleMove returns the engine's placement.
func (sess *Session) handleMove(args []string) string {
	b, s, err := parsePositionArgs(args)
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}

	m, ok := sess.engine.Place(b, s)
	if !ok {
		return "pass\n"
	}
	return m.String() + "\n"
}

// handleEval returns the static evaluation.
func (sess *Session) handleEval(args []string) string {
	b, s, err := parsePositionArgs(args)
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return strconv.Itoa(engine.Evaluate(b, s)) + "\n"
}

// handleLegal lists legal placements.
func (sess *Session) handleLegal(args []string) string {
	b, s, err := parsePositionArgs(args)
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return formatMoves(engine.LegalMoves(b, s)) + "\n"
}

// handleShow prints the board in the 36-cell form with its ID.
func (sess *Session) handleShow(args []string) string {
	if len(args) != 1 {
		return "Error: expected <pos>\n"
	}
	b, err := ParsePosition(args[0])
	if err != nil {
		return fmt.Sprintf("Error: %v\n", err)
	}
	return fmt.Sprintf("%s %s\n", engine.BoardID(b), FormatPosition(b))
}
