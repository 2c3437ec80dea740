// Package analyze computes descriptive statistics over a combined
// evaluation file.
package analyze

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/peer-eval-cli/internal/report"
	"github.com/sells-group/peer-eval-cli/internal/tableio"
)

// ErrMissingOutput means the combined file to analyze does not exist.
var ErrMissingOutput = eris.New("analyze: file not found")

// Analyzer loads a combined file and prints its report.
type Analyzer struct {
	roster string
	out    report.Reporter
	log    *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRoster adds roster coverage to the report, read from a CSV whose first
// two columns are student ID and name.
func WithRoster(path string) Option {
	return func(a *Analyzer) { a.roster = path }
}

// WithLogger sets the logger. The default is the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// New builds an Analyzer writing to out.
func New(out report.Reporter, opts ...Option) *Analyzer {
	a := &Analyzer{out: out, log: zap.L()}
	for _, o := range opts {
		o(a)
	}
	a.log = a.log.With(zap.String("component", "analyze"))
	return a
}

// Analyze loads the combined file at path, computes the report and prints it.
// The file is only read.
func (a *Analyzer) Analyze(path string) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			a.out.Linef("File not found: %s", path)
			return nil, eris.Wrapf(ErrMissingOutput, "analyze: %s", path)
		}
		return nil, eris.Wrapf(err, "analyze: stat %s", path)
	}

	t, err := tableio.Load(path)
	if err != nil {
		return nil, eris.Wrapf(err, "analyze: load %s", path)
	}

	rep := Compute(t)

	if a.roster != "" {
		roster, err := LoadRoster(a.roster)
		if err != nil {
			return nil, err
		}
		cov := Cover(roster, rep.Participation)
		rep.Roster = &cov
	}

	a.log.Info("analysis complete",
		zap.String("file", path),
		zap.Int("records", rep.Basic.Total),
		zap.Int("non_submitters", len(rep.Participation.NonSubmitters)),
	)

	Print(a.out, rep)
	return rep, nil
}
