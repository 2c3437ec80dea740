package analyze

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/peer-eval-cli/internal/model"
	"github.com/sells-group/peer-eval-cli/internal/report"
	"github.com/sells-group/peer-eval-cli/internal/tableio"
)

type rec struct {
	evaluator, evaluated, rating, label string
}

func buildTable(recs ...rec) *model.Table {
	tbl := model.NewTable(append(slices.Clone(model.EvaluationColumns), model.ColSourceFile)...)
	for _, r := range recs {
		tbl.Append(model.Row{
			model.ColEvaluatorID: model.ParseValue(r.evaluator),
			model.ColEvaluatedID: model.ParseValue(r.evaluated),
			model.ColRating:      model.ParseValue(r.rating),
			model.ColRatingLabel: model.ParseValue(r.label),
			model.ColSourceFile:  model.StringValue(r.evaluator + ".csv"),
		})
	}
	return tbl
}

func writeCombined(t *testing.T, name string, tbl *model.Table) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, tableio.Save(path, tbl))
	return path
}

func newTestAnalyzer(buf *bytes.Buffer, opts ...Option) *Analyzer {
	opts = append(opts, WithLogger(zap.NewNop()))
	return New(report.NewConsole(buf), opts...)
}

func TestCompute_BasicStatistics(t *testing.T) {
	rep := Compute(buildTable(
		rec{"S1", "S2", "5", "Excellent"},
		rec{"S1", "S3", "3", "Good"},
		rec{"S2", "S1", "4", "Very Good"},
		rec{"S2", "S3", "2", "Fair"},
	))

	assert.Equal(t, 4, rep.Basic.Total)
	assert.Equal(t, 2, rep.Basic.UniqueEvaluator)
	assert.Equal(t, 3, rep.Basic.UniqueEvaluated)
	assert.InDelta(t, 3.5, rep.Basic.MeanRating, 1e-9)
	assert.InDelta(t, 2.0, rep.Basic.MinRating, 1e-9)
	assert.InDelta(t, 5.0, rep.Basic.MaxRating, 1e-9)
}

func TestCompute_NoNumericRatings(t *testing.T) {
	rep := Compute(buildTable(rec{"S1", "S2", "", "Good"}))
	assert.True(t, math.IsNaN(rep.Basic.MeanRating))
	assert.True(t, math.IsNaN(rep.Basic.MinRating))
	assert.Equal(t, "n/a", fmt1(rep.Basic.MaxRating))
}

func TestCompute_DistributionSortedByLabel(t *testing.T) {
	rep := Compute(buildTable(
		rec{"S1", "S2", "5", "Excellent"},
		rec{"S1", "S3", "3", "Good"},
		rec{"S2", "S1", "5", "Excellent"},
		rec{"S2", "S3", "1", "Bad"},
	))

	require.Len(t, rep.Distribution, 3)
	assert.Equal(t, "Bad", rep.Distribution[0].Label)
	assert.Equal(t, "Excellent", rep.Distribution[1].Label)
	assert.Equal(t, 2, rep.Distribution[1].Count)
	assert.InDelta(t, 50.0, rep.Distribution[1].Percent, 1e-9)
	assert.Equal(t, "Good", rep.Distribution[2].Label)

	var total float64
	for _, d := range rep.Distribution {
		total += d.Percent
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestCompute_SelfEvaluationOnly(t *testing.T) {
	rep := Compute(buildTable(rec{"S1", "S1", "5", "Excellent"}))

	require.NotNil(t, rep.Self)
	assert.Equal(t, 1, rep.Self.Count)
	assert.InDelta(t, 5.0, rep.Self.MeanSelf, 1e-9)
	assert.True(t, math.IsNaN(rep.Self.MeanOthers))
}

func TestCompute_SelfEvaluationMixed(t *testing.T) {
	rep := Compute(buildTable(
		rec{"S1", "S1", "5", "Excellent"},
		rec{"S2", "S2", "4", "Very Good"},
		rec{"S1", "S2", "2", "Fair"},
		rec{"S2", "S1", "3", "Good"},
		rec{"", "", "1", "Bad"},
	))

	require.NotNil(t, rep.Self)
	assert.Equal(t, 2, rep.Self.Count)
	assert.InDelta(t, 4.5, rep.Self.MeanSelf, 1e-9)
	assert.InDelta(t, 2.0, rep.Self.MeanOthers, 1e-9)
}

func TestCompute_NoSelfEvaluations(t *testing.T) {
	rep := Compute(buildTable(rec{"S1", "S2", "5", "Excellent"}))
	assert.Nil(t, rep.Self)
}

func TestCompute_NonSubmitters(t *testing.T) {
	rep := Compute(buildTable(
		rec{"S1", "S2", "4", "Good"},
		rec{"S1", "S3", "4", "Good"},
		rec{"S2", "S1", "4", "Good"},
		rec{"S2", "S3", "4", "Good"},
	))

	assert.Equal(t, []string{"S1", "S2"}, rep.Participation.Submitters)
	assert.Equal(t, []string{"S1", "S2", "S3"}, rep.Participation.Evaluated)
	assert.Equal(t, []string{"S3"}, rep.Participation.NonSubmitters)
}

func TestCompute_EveryoneSubmitted(t *testing.T) {
	rep := Compute(buildTable(
		rec{"S1", "S2", "4", "Good"},
		rec{"S2", "S1", "4", "Good"},
	))
	assert.Empty(t, rep.Participation.NonSubmitters)
}

func TestAnalyze_PrintsReport(t *testing.T) {
	path := writeCombined(t, "combined.csv", buildTable(
		rec{"S1", "S1", "5", "Excellent"},
		rec{"S1", "S2", "4", "Very Good"},
		rec{"S1", "S3", "3", "Good"},
		rec{"S2", "S1", "4", "Very Good"},
	))

	var buf bytes.Buffer
	rep, err := newTestAnalyzer(&buf).Analyze(path)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Basic.Total)

	text := buf.String()
	assert.Contains(t, text, "ANALYSIS REPORT")
	assert.Contains(t, text, "   Total evaluations: 4")
	assert.Contains(t, text, "   Average rating: 4.0")
	assert.Contains(t, text, "   Rating range: 3.0 - 5.0")
	assert.Contains(t, text, "   Excellent: 1 (25.0%)")
	assert.Contains(t, text, "   Very Good: 2 (50.0%)")
	assert.Contains(t, text, "   Self-evaluations: 1")
	assert.Contains(t, text, "   Average self-rating: 5.0")
	assert.Contains(t, text, "   Average rating of others: 3.7")
	assert.Contains(t, text, "   Students who submitted: 2")
	assert.Contains(t, text, "   Students who were evaluated: 3")
	assert.Contains(t, text, "   Non-submitters: S3")
	assert.NotContains(t, text, "ROSTER COVERAGE")
}

func TestAnalyze_TotalMatchesFileRows(t *testing.T) {
	tbl := buildTable(
		rec{"S1", "S2", "4", "Good"},
		rec{"S2", "S1", "", ""},
		rec{"S3", "S1", "N/A", "Good"},
	)
	path := writeCombined(t, "combined.csv", tbl)

	rep, err := newTestAnalyzer(&bytes.Buffer{}).Analyze(path)
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), rep.Basic.Total)
	assert.InDelta(t, 4.0, rep.Basic.MeanRating, 1e-9)
}

func TestAnalyze_XLSX(t *testing.T) {
	tbl := buildTable(
		rec{"S1", "S2", "4", "Good"},
		rec{"S2", "S3", "2", "Fair"},
	)
	csvPath := writeCombined(t, "combined.csv", tbl)
	xlsxPath := writeCombined(t, "combined.xlsx", tbl)

	fromCSV, err := newTestAnalyzer(&bytes.Buffer{}).Analyze(csvPath)
	require.NoError(t, err)
	fromXLSX, err := newTestAnalyzer(&bytes.Buffer{}).Analyze(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, fromCSV, fromXLSX)
}

func TestAnalyze_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	_, err := newTestAnalyzer(&buf).Analyze(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMissingOutput))
	assert.Contains(t, buf.String(), "File not found")
}

func TestAnalyze_WithRoster(t *testing.T) {
	dir := t.TempDir()
	roster := filepath.Join(dir, "students.csv")
	require.NoError(t, os.WriteFile(roster, []byte("id,name\nS4,Dee\nS1,Al\nS2,Bo\nS3,Cy\nS1,Al again\n,Nobody\n"), 0o644))

	path := writeCombined(t, "combined.csv", buildTable(
		rec{"S1", "S2", "4", "Good"},
		rec{"S2", "S3", "4", "Good"},
		rec{"S9", "S1", "4", "Good"},
	))

	var buf bytes.Buffer
	rep, err := newTestAnalyzer(&buf, WithRoster(roster)).Analyze(path)
	require.NoError(t, err)

	require.NotNil(t, rep.Roster)
	assert.Equal(t, 4, rep.Roster.Size)
	assert.Equal(t, 2, rep.Roster.Submitted)
	assert.InDelta(t, 50.0, rep.Roster.SubmissionRate, 1e-9)
	assert.Equal(t, []Student{{ID: "S3", Name: "Cy"}, {ID: "S4", Name: "Dee"}}, rep.Roster.Missing)

	text := buf.String()
	assert.Contains(t, text, "ROSTER COVERAGE")
	assert.Contains(t, text, "   Submission rate: 50.0%")
	assert.Contains(t, text, "   - S3 (Cy)")
}

func TestAnalyze_BadRoster(t *testing.T) {
	path := writeCombined(t, "combined.csv", buildTable(rec{"S1", "S2", "4", "Good"}))

	_, err := newTestAnalyzer(&bytes.Buffer{}, WithRoster(filepath.Join(t.TempDir(), "nope.csv"))).Analyze(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roster")
}

func TestCover_EmptyRoster(t *testing.T) {
	cov := Cover(nil, Participation{Submitters: []string{"S1"}})
	assert.Equal(t, 0, cov.Size)
	assert.InDelta(t, 0.0, cov.SubmissionRate, 1e-9)
	assert.Empty(t, cov.Missing)
}
