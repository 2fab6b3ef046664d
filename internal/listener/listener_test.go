package listener

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/display"
	"github.com/pixil98/go-crewmon/internal/locale"
	"github.com/pixil98/go-crewmon/internal/messaging"
	"github.com/pixil98/go-testutil"
)

type mockFormatter struct{}

func (mockFormatter) Format(key string, args locale.Args) string {
	if station, ok := args["station"]; ok {
		return "monitor " + station.(string)
	}
	return key
}

type rw struct {
	io.Reader
	io.Writer
}

func testBoard() *Board {
	b := NewBoard("outpost")
	b.Update(&messaging.Snapshot{
		Station: "outpost",
		Sensors: []crew.SensorStatus{
			{ID: uuid.New(), Name: "Ann", Job: "Captain", Departments: []string{"Command"}, Alive: true, Coordinates: &crew.Coordinates{X: 3, Y: 4}},
			{ID: uuid.New(), Name: "Bo", Job: "Doctor", Departments: []string{"Medical"}, Alive: true},
		},
	})
	return b
}

func TestBoard(t *testing.T) {
	b := NewBoard("outpost")
	testutil.AssertEqual(t, "empty station", b.Latest().Station, "outpost")
	testutil.AssertEqual(t, "empty sensors", len(b.Latest().Sensors), 0)

	b.Update(&messaging.Snapshot{Station: "elsewhere", Sensors: []crew.SensorStatus{{Name: "X"}}})
	testutil.AssertEqual(t, "other station ignored", len(b.Latest().Sensors), 0)

	snap := &messaging.Snapshot{Station: "outpost", Sensors: []crew.SensorStatus{{Name: "Ann"}}}
	b.Update(snap)
	latest := b.Latest()
	latest.Sensors[0].Name = "changed"
	testutil.AssertEqual(t, "copy", b.Latest().Sensors[0].Name, "Ann")
}

func TestConnectionManager_Handle(t *testing.T) {
	cm := NewConnectionManager(testBoard(), display.NewRosterText(mockFormatter{}))

	tests := map[string]struct {
		line     string
		contains []string
		excludes []string
		quit     bool
	}{
		"look": {
			line:     "look",
			contains: []string{"monitor outpost", "Ann", "Bo"},
		},
		"blank line looks": {
			line:     "  ",
			contains: []string{"Ann"},
		},
		"filter": {
			line:     "filter capt",
			contains: []string{"Ann"},
			excludes: []string{"Bo "},
		},
		"track placed": {
			line:     "track ann",
			contains: []string{"Ann, Captain: 3.0, 4.0"},
		},
		"track lost": {
			line:     "track doctor",
			contains: []string{display.MsgNoPosition},
		},
		"track unknown": {
			line:     "track zed",
			contains: []string{`no crew member matches "zed"`},
		},
		"help": {
			line:     "HELP",
			contains: []string{"filter <text>"},
		},
		"unknown": {
			line:     "dance",
			contains: []string{`unknown command "dance"`},
		},
		"quit": {
			line:     "quit",
			contains: []string{"goodbye"},
			quit:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, quit := cm.handle(&session{}, tt.line)
			testutil.AssertEqual(t, "quit", quit, tt.quit)
			for _, c := range tt.contains {
				if !strings.Contains(out, c) {
					t.Errorf("expected %q in output:\n%s", c, out)
				}
			}
			for _, c := range tt.excludes {
				if strings.Contains(out, c) {
					t.Errorf("unexpected %q in output:\n%s", c, out)
				}
			}
		})
	}
}

func TestConnectionManager_Session(t *testing.T) {
	cm := NewConnectionManager(testBoard(), display.NewRosterText(mockFormatter{}))

	var out bytes.Buffer
	conn := newCRLFReadWriter(rw{
		Reader: strings.NewReader("track ann\r\nlook\r\nuntrack\r\nquit\r\n"),
		Writer: &out,
	})

	cm.AcceptConnection(context.Background(), conn)

	text := out.String()
	testutil.AssertEqual(t, "crlf", strings.Contains(text, "\r\n"), true)
	testutil.AssertEqual(t, "no bare newlines", strings.Count(text, "\n"), strings.Count(text, "\r\n"))
	testutil.AssertEqual(t, "prompts", strings.Count(text, prompt), 4)
	testutil.AssertEqual(t, "focused on look", strings.Contains(text, ">+ Ann"), true)
	testutil.AssertEqual(t, "ends with goodbye", strings.HasSuffix(text, "goodbye\r\n"), true)
}

func TestConnectionManager_SessionEOF(t *testing.T) {
	cm := NewConnectionManager(testBoard(), display.NewRosterText(mockFormatter{}))

	var out bytes.Buffer
	err := cm.runSession(context.Background(), rw{Reader: strings.NewReader(""), Writer: &out})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "initial roster", strings.Contains(out.String(), "Ann"), true)
}

func TestCRLFReadWriter(t *testing.T) {
	var out bytes.Buffer
	c := newCRLFReadWriter(rw{Reader: strings.NewReader("a\r\nb\rc\n"), Writer: &out})

	buf := make([]byte, 32)
	n, err := c.Read(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "read", string(buf[:n]), "a\nb\nc\n")

	n, err = c.Write([]byte("x\ny\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reported length", n, 4)
	testutil.AssertEqual(t, "written", out.String(), "x\r\ny\r\n")
}

type feedBus struct {
	subscribed chan func([]byte)
}

func (b *feedBus) Publish(string, []byte) error { return nil }

func (b *feedBus) Subscribe(subject string, handler func([]byte)) (func(), error) {
	b.subscribed <- handler
	return func() {}, nil
}

func TestBoardFeed(t *testing.T) {
	board := NewBoard("outpost")
	bus := &feedBus{subscribed: make(chan func([]byte), 1)}
	ready := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewBoardFeed(board, bus, ready).Start(ctx) }()

	close(ready)
	handler := <-bus.subscribed
	handler([]byte(`{"station":"outpost","sensors":[{"name":"Ann"}]}`))
	testutil.AssertEqual(t, "updated", board.Latest().Sensors[0].Name, "Ann")

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
