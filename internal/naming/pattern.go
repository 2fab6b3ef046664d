package naming

import "fmt"

// Pattern selects which fragments make up a species' names and which
// locale template joins them.
type Pattern int

const (
	PatternFirstLast Pattern = iota
	PatternFirst
	PatternLastNoFirst
	PatternTheFirstOfLast
	PatternFirstDashFirst
	PatternFirstDashLast
	PatternLastFirst
)

var patternNames = map[Pattern]string{
	PatternFirstLast:      "firstlast",
	PatternFirst:          "first",
	PatternLastNoFirst:    "lastnofirst",
	PatternTheFirstOfLast: "thefirstoflast",
	PatternFirstDashFirst: "firstdashfirst",
	PatternFirstDashLast:  "firstdashlast",
	PatternLastFirst:      "lastfirst",
}

func (p Pattern) String() string {
	if s, ok := patternNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Pattern(%d)", int(p))
}

// MessageKey is the locale key of the template for this pattern.
func (p Pattern) MessageKey() string {
	return "namepreset-" + p.String()
}

func (p Pattern) MarshalText() ([]byte, error) {
	if _, ok := patternNames[p]; !ok {
		return nil, fmt.Errorf("unknown naming pattern: %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	for k, v := range patternNames {
		if v == string(text) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown naming pattern: %s", text)
}

// Gender steers which first-name table a draw uses.
type Gender int

const (
	GenderUnset Gender = iota
	GenderMale
	GenderFemale
	GenderDemiMasc
	GenderDemiFemme
	GenderEpicene
	GenderNeuter
)

var genderNames = map[Gender]string{
	GenderUnset:     "",
	GenderMale:      "male",
	GenderFemale:    "female",
	GenderDemiMasc:  "demimasc",
	GenderDemiFemme: "demifemme",
	GenderEpicene:   "epicene",
	GenderNeuter:    "neuter",
}

func (g Gender) String() string {
	if s, ok := genderNames[g]; ok {
		return s
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	for k, v := range genderNames {
		if v == string(text) {
			*g = k
			return nil
		}
	}
	return fmt.Errorf("unknown gender: %s", text)
}

func (g Gender) masculine() bool {
	return g == GenderMale || g == GenderDemiMasc
}

func (g Gender) feminine() bool {
	return g == GenderFemale || g == GenderDemiFemme
}
