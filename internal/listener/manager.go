package listener

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/display"
)

const prompt = "> "

const helpText = `commands:
  look            show the crew roster
  filter <text>   only list crew whose name or job contains text
  filter          clear the filter
  track <name>    follow a crew member
  untrack         stop following
  quit            disconnect
`

type ConnectionManager struct {
	board *Board
	text  *display.RosterText
}

func NewConnectionManager(board *Board, text *display.RosterText) *ConnectionManager {
	return &ConnectionManager{
		board: board,
		text:  text,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.runSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "monitor session", "error", err)
	}
}

type session struct {
	filter string
	focus  uuid.UUID
}

func (m *ConnectionManager) runSession(ctx context.Context, conn io.ReadWriter) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s := &session{}
	if err := m.write(conn, m.look(s)+prompt); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		case line := <-lines:
			out, quit := m.handle(s, line)
			if quit {
				return m.write(conn, out)
			}
			if err := m.write(conn, out+prompt); err != nil {
				return err
			}
		}
	}
}

// handle runs one command line and returns the reply.
func (m *ConnectionManager) handle(s *session, line string) (string, bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "", "look":
		return m.look(s), false
	case "filter":
		s.filter = arg
		return m.look(s), false
	case "track":
		target := m.find(arg)
		if target == nil {
			return fmt.Sprintf("no crew member matches %q\n", arg), false
		}
		s.focus = target.ID
		return m.text.Locate(target) + "\n", false
	case "untrack":
		s.focus = uuid.Nil
		return m.look(s), false
	case "help":
		return helpText, false
	case "quit", "exit":
		return "goodbye\n", true
	default:
		return fmt.Sprintf("unknown command %q, try help\n", cmd), false
	}
}

func (m *ConnectionManager) look(s *session) string {
	snap := m.board.Latest()
	out := m.text.Render(snap.Station, snap.Sensors, s.filter, s.focus)

	if s.focus != uuid.Nil {
		for i := range snap.Sensors {
			if snap.Sensors[i].ID == s.focus {
				out += m.text.Locate(&snap.Sensors[i]) + "\n"
				break
			}
		}
	}
	return out
}

// find returns the first sensor in roster order whose name or job matches.
func (m *ConnectionManager) find(query string) *crew.SensorStatus {
	if query == "" {
		return nil
	}
	snap := m.board.Latest()
	roster := crew.BuildRoster(snap.Sensors)
	for i := range roster.Sensors {
		if roster.Sensors[i].Matches(query) {
			return &roster.Sensors[i]
		}
	}
	return nil
}

func (m *ConnectionManager) write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
