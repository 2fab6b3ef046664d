package crew

import (
	"cmp"
	"slices"
	"strings"
)

// Group is one department section of the roster. Members index into
// Roster.Sensors and keep the roster's sort order.
type Group struct {
	Department string
	Catchall   bool
	Members    []int
}

// Roster is a sorted sensor list partitioned by department.
type Roster struct {
	Sensors []SensorStatus
	Groups  []Group
}

// BuildRoster stable-sorts sensors by (job, name) and groups them. A sensor
// is listed once under every department it belongs to. Sensors without any
// department are collected in a trailing catch-all group.
func BuildRoster(sensors []SensorStatus) *Roster {
	sorted := slices.Clone(sensors)
	slices.SortStableFunc(sorted, func(a, b SensorStatus) int {
		return cmp.Or(
			strings.Compare(a.Job, b.Job),
			strings.Compare(a.Name, b.Name),
		)
	})

	members := map[string][]int{}
	var unassigned []int
	for i := range sorted {
		depts := distinct(sorted[i].Departments)
		if len(depts) == 0 {
			unassigned = append(unassigned, i)
			continue
		}
		for _, d := range depts {
			members[d] = append(members[d], i)
		}
	}

	r := &Roster{Sensors: sorted}

	depts := make([]string, 0, len(members))
	for d := range members {
		depts = append(depts, d)
	}
	slices.Sort(depts)

	for _, d := range depts {
		r.Groups = append(r.Groups, Group{Department: d, Members: members[d]})
	}
	if len(unassigned) > 0 {
		r.Groups = append(r.Groups, Group{Catchall: true, Members: unassigned})
	}

	return r
}

// Empty reports whether the roster has no sensors.
func (r *Roster) Empty() bool {
	return r == nil || len(r.Sensors) == 0
}

func distinct(vals []string) []string {
	if len(vals) < 2 {
		return vals
	}
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
