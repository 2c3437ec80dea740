package analyze

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/peer-eval-cli/internal/tableio"
)

// Student is one roster entry.
type Student struct {
	ID   string
	Name string
}

// RosterCoverage relates the class roster to who submitted.
type RosterCoverage struct {
	Size           int
	Submitted      int
	SubmissionRate float64 // percent of roster students who submitted
	Missing        []Student
}

// LoadRoster reads a roster file (CSV or XLSX) with a header row. The first
// column is the student ID and the second, when present, the name. Rows
// without an ID are skipped; repeated IDs keep their first entry.
func LoadRoster(path string) ([]Student, error) {
	t, err := tableio.Load(path)
	if err != nil {
		return nil, eris.Wrapf(err, "analyze: load roster %s", path)
	}
	if len(t.Columns) == 0 {
		return nil, eris.Errorf("analyze: roster %s has no columns", path)
	}

	idCol := t.Columns[0]
	nameCol := ""
	if len(t.Columns) > 1 {
		nameCol = t.Columns[1]
	}

	seen := make(map[string]bool)
	var students []Student
	for _, r := range t.Rows {
		id, ok := r.Get(idCol).Key()
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		s := Student{ID: id}
		if nameCol != "" {
			s.Name = r.Get(nameCol).Raw
		}
		students = append(students, s)
	}
	return students, nil
}

// Cover computes roster coverage. Submitters not on the roster are ignored.
func Cover(roster []Student, p Participation) RosterCoverage {
	submitted := make(map[string]bool, len(p.Submitters))
	for _, id := range p.Submitters {
		submitted[id] = true
	}

	cov := RosterCoverage{Size: len(roster)}
	for _, s := range roster {
		if submitted[s.ID] {
			cov.Submitted++
		} else {
			cov.Missing = append(cov.Missing, s)
		}
	}
	sort.SliceStable(cov.Missing, func(i, j int) bool { return cov.Missing[i].ID < cov.Missing[j].ID })
	if cov.Size > 0 {
		cov.SubmissionRate = float64(cov.Submitted) / float64(cov.Size) * 100
	}
	return cov
}
