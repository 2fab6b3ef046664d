package display

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-crewmon/internal/crew"
	"github.com/pixil98/go-crewmon/internal/locale"
	"github.com/pixil98/go-testutil"
)

type mockFormatter struct{}

func (mockFormatter) Format(key string, args locale.Args) string {
	if name, ok := args["name"]; ok {
		return key + ":" + name.(string)
	}
	return key
}

func placed(name, job string, depts ...string) crew.SensorStatus {
	return crew.SensorStatus{
		ID:          uuid.New(),
		Name:        name,
		Job:         job,
		Departments: depts,
		Alive:       true,
		Coordinates: &crew.Coordinates{X: 1, Y: 2},
	}
}

func TestCell(t *testing.T) {
	tests := map[string]struct {
		in    string
		width int
		exp   string
	}{
		"pads short":     {in: "Ann", width: 6, exp: "Ann   "},
		"exact":          {in: "Ann", width: 3, exp: "Ann"},
		"truncates long": {in: "Annabelle", width: 5, exp: "Anna…"},
		"one over":       {in: "Anne", width: 3, exp: "An…"},
		"wide runes":     {in: "Zoë", width: 3, exp: "Zoë"},
		"zero width":     {in: "Ann", width: 0, exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "cell", Cell(tt.in, tt.width), tt.exp)
		})
	}
}

func TestCapitalize(t *testing.T) {
	testutil.AssertEqual(t, "empty", Capitalize(""), "")
	testutil.AssertEqual(t, "word", Capitalize("command"), "Command")
}

func TestRosterText_RenderEmpty(t *testing.T) {
	out := NewRosterText(mockFormatter{}).Render("outpost", nil, "", uuid.Nil)
	testutil.AssertEqual(t, "output", out, MsgTitle+"\n"+MsgNoServer+"\n")
}

func TestRosterText_Render(t *testing.T) {
	captain := placed("Ann", "Captain", "Command")
	cmo := placed("Bo", "Chief Medical Officer", "Command", "Medical")
	lost := placed("Cy", "Passenger")
	lost.Coordinates = nil

	r := NewRosterText(mockFormatter{}, WithWidth(60))
	out := r.Render("outpost", []crew.SensorStatus{lost, cmo, captain}, "", cmo.ID)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	testutil.AssertEqual(t, "line count", len(lines), 10)
	testutil.AssertEqual(t, "title", lines[0], MsgTitle)
	testutil.AssertEqual(t, "command header", lines[1], "Command")
	testutil.AssertEqual(t, "captain first", strings.HasPrefix(lines[2], " + Ann"), true)
	testutil.AssertEqual(t, "focused marker", strings.HasPrefix(lines[3], ">+ Bo"), true)
	testutil.AssertEqual(t, "separator", lines[4], strings.Repeat("-", 60))
	testutil.AssertEqual(t, "medical header", lines[5], "Medical")
	testutil.AssertEqual(t, "catch-all header", lines[8], MsgNoDepartment)
	testutil.AssertEqual(t, "no position", strings.HasPrefix(lines[9], " x Cy"), true)

	for _, l := range lines[2:4] {
		testutil.AssertEqual(t, "row width", len([]rune(l)), 60)
	}
}

func TestRosterText_RenderFilter(t *testing.T) {
	r := NewRosterText(mockFormatter{})
	out := r.Render("outpost", []crew.SensorStatus{
		placed("Ann", "Captain", "Command"),
		placed("Bo", "Doctor", "Medical"),
	}, "doc", uuid.Nil)

	testutil.AssertEqual(t, "hides captain", strings.Contains(out, "Ann"), false)
	testutil.AssertEqual(t, "shows doctor", strings.Contains(out, "Bo"), true)
	testutil.AssertEqual(t, "keeps headers", strings.Contains(out, "Command"), true)
}

func TestRosterText_Locate(t *testing.T) {
	r := NewRosterText(mockFormatter{})
	s := placed("Ann", "Captain")
	testutil.AssertEqual(t, "placed", r.Locate(&s), "Ann, Captain: 1.0, 2.0")

	s.Coordinates = nil
	testutil.AssertEqual(t, "lost", r.Locate(&s), MsgNoPosition+":Ann, Captain")
}

func TestRosterText_RenderFullWidthName(t *testing.T) {
	// Width 60 leaves 23 cells for the name column.
	name := "Maximilian Featherstone"
	r := NewRosterText(mockFormatter{}, WithWidth(60))
	out := r.Render("outpost", []crew.SensorStatus{placed(name, "Captain", "Command")}, "", uuid.Nil)

	testutil.AssertEqual(t, "full name", strings.Contains(out, " + "+name+" Captain"), true)
	testutil.AssertEqual(t, "no ellipsis", strings.Contains(out, "…"), false)
}
