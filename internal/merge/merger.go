// Package merge combines per-student evaluation CSV files into one sorted
// file tagged with each row's source file.
package merge

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/peer-eval-cli/internal/config"
	"github.com/sells-group/peer-eval-cli/internal/model"
	"github.com/sells-group/peer-eval-cli/internal/report"
	"github.com/sells-group/peer-eval-cli/internal/tableio"
)

var (
	// ErrNoInput means the input directory held no matching files.
	ErrNoInput = eris.New("merge: no CSV files found")
	// ErrAllFailed means every discovered file failed to load.
	ErrAllFailed = eris.New("merge: no valid CSV files could be processed")
)

// HeaderWarning records a file whose header differs from the expected one.
// The file is still merged.
type HeaderWarning struct {
	File     string
	Expected []string
	Found    []string
}

// FileError records a file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

// Result describes one merge run.
type Result struct {
	OutputPath string
	Discovered []string
	Processed  []string
	Failed     []FileError
	Warnings   []HeaderWarning
	Table      *model.Table
	Summary    []EvaluatorSummary
}

// Merger combines submission files.
type Merger struct {
	pattern  string
	expected []string
	out      report.Reporter
	log      *zap.Logger
}

// New builds a Merger. A nil logger falls back to the global zap logger.
func New(cfg config.MergeConfig, out report.Reporter, log *zap.Logger) *Merger {
	if log == nil {
		log = zap.L()
	}
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "*.csv"
	}
	expected := cfg.ExpectedHeaders
	if len(expected) == 0 {
		expected = model.EvaluationColumns
	}
	return &Merger{
		pattern:  pattern,
		expected: expected,
		out:      out,
		log:      log.With(zap.String("component", "merge")),
	}
}

// Merge loads every matching file in inputDir, tags rows with their source
// file name, sorts by evaluator and timestamp, and writes the result to
// outputPath. Files that fail to load are skipped and listed in the result.
// ErrNoInput and ErrAllFailed leave outputPath untouched.
func (m *Merger) Merge(inputDir, outputPath string) (*Result, error) {
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "merge: create input dir %s", inputDir)
	}

	files, err := Discover(inputDir, m.pattern)
	if err != nil {
		return nil, err
	}

	res := &Result{OutputPath: outputPath, Discovered: files}
	if len(files) == 0 {
		m.out.Linef("No CSV files found in %s", inputDir)
		m.out.Linef("Please place student CSV files in the '%s' folder", inputDir)
		return res, ErrNoInput
	}
	m.out.Linef("Found %d CSV files", len(files))
	m.log.Info("discovered submission files", zap.String("dir", inputDir), zap.Int("files", len(files)))

	var loaded []*model.Table
	for _, path := range files {
		t, ok := m.load(path, res)
		if ok {
			loaded = append(loaded, t)
		}
	}

	if len(loaded) == 0 {
		m.out.Linef("No valid CSV files could be processed")
		return res, ErrAllFailed
	}

	m.out.Linef("Combining %d files...", len(loaded))
	combined := model.Concat(loaded...)
	combined.MoveColumnLast(model.ColSourceFile)
	combined.SortBy(model.MergeOrder...)

	if err := tableio.Save(outputPath, combined); err != nil {
		return res, eris.Wrap(err, "merge: write output")
	}

	res.Table = combined
	res.Summary = Summarize(combined)
	m.log.Info("merge complete",
		zap.String("output", outputPath),
		zap.Int("records", combined.Len()),
		zap.Int("processed", len(res.Processed)),
		zap.Int("failed", len(res.Failed)),
	)

	printSummary(m.out, res)
	return res, nil
}

// load reads one submission file and tags its rows. Failures are recorded
// on res and reported; they never abort the run.
func (m *Merger) load(path string, res *Result) (*model.Table, bool) {
	base := filepath.Base(path)
	m.out.Linef("Processing: %s", base)

	t, err := tableio.Load(path)
	if err != nil {
		m.out.Linef("Error processing %s: %v", path, err)
		m.log.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
		res.Failed = append(res.Failed, FileError{Path: path, Err: err})
		return nil, false
	}

	if !slices.Equal(t.Columns, m.expected) {
		found := slices.Clone(t.Columns)
		m.out.Linef("Warning: Headers don't match expected format in %s", path)
		m.out.Linef("   Expected: %v", m.expected)
		m.out.Linef("   Found: %v", found)
		res.Warnings = append(res.Warnings, HeaderWarning{File: path, Expected: m.expected, Found: found})
	}

	t.SetColumn(model.ColSourceFile, model.StringValue(base))
	res.Processed = append(res.Processed, path)
	m.log.Debug("loaded submission", zap.String("file", base), zap.Int("rows", t.Len()))
	return t, true
}
