package merge

import (
	"fmt"
	"math"
	"sort"

	"github.com/sells-group/peer-eval-cli/internal/model"
	"github.com/sells-group/peer-eval-cli/internal/report"
)

// EvaluatorSummary aggregates the evaluations one student submitted.
type EvaluatorSummary struct {
	EvaluatorID      model.Value
	EvaluatorName    model.Value
	EvaluationsGiven int
	AvgRatingGiven   float64 // rounded to 2 decimals; NaN when no numeric rating
}

// Summarize groups rows by (Evaluator ID, Evaluator Name). Rows missing either
// key are left out. EvaluationsGiven counts non-empty Evaluated ID cells; the
// average covers numeric Rating cells only. Groups come back in key order.
func Summarize(t *model.Table) []EvaluatorSummary {
	type acc struct {
		id, name    model.Value
		given       int
		sum         float64
		ratingCount int
	}

	groups := make(map[[2]string]*acc)
	var order []*acc
	for _, r := range t.Rows {
		id, name := r.Get(model.ColEvaluatorID), r.Get(model.ColEvaluatorName)
		idKey, ok1 := id.Key()
		nameKey, ok2 := name.Key()
		if !ok1 || !ok2 {
			continue
		}

		k := [2]string{idKey, nameKey}
		g, ok := groups[k]
		if !ok {
			g = &acc{id: id, name: name}
			groups[k] = g
			order = append(order, g)
		}
		if !r.Get(model.ColEvaluatedID).IsEmpty() {
			g.given++
		}
		if rating := r.Get(model.ColRating); rating.IsNumber() {
			g.sum += rating.Num
			g.ratingCount++
		}
	}

	idNumeric := t.NumericColumn(model.ColEvaluatorID)
	nameNumeric := t.NumericColumn(model.ColEvaluatorName)
	sort.SliceStable(order, func(i, j int) bool {
		if d := model.Compare(order[i].id, order[j].id, idNumeric); d != 0 {
			return d < 0
		}
		return model.Compare(order[i].name, order[j].name, nameNumeric) < 0
	})

	out := make([]EvaluatorSummary, len(order))
	for i, g := range order {
		avg := math.NaN()
		if g.ratingCount > 0 {
			avg = math.Round(g.sum/float64(g.ratingCount)*100) / 100
		}
		out[i] = EvaluatorSummary{
			EvaluatorID:      g.id,
			EvaluatorName:    g.name,
			EvaluationsGiven: g.given,
			AvgRatingGiven:   avg,
		}
	}
	return out
}

// printSummary writes the post-merge summary block.
func printSummary(out report.Reporter, res *Result) {
	out.Linef("")
	out.Linef("Combined CSV created: %s", res.OutputPath)
	out.Linef("Total records: %d", res.Table.Len())
	out.Linef("Unique evaluators: %d", distinct(res.Table, model.ColEvaluatorID))
	out.Linef("Total evaluations: %d", res.Table.Len())

	out.Linef("")
	out.Linef("Summary by student:")
	rows := make([][]string, len(res.Summary))
	for i, s := range res.Summary {
		rows[i] = []string{
			s.EvaluatorID.Raw,
			s.EvaluatorName.Raw,
			fmt.Sprintf("%d", s.EvaluationsGiven),
			formatAvg(s.AvgRatingGiven),
		}
	}
	out.Table([]string{model.ColEvaluatorID, model.ColEvaluatorName, "Evaluations_Given", "Avg_Rating_Given"}, rows)

	if len(res.Failed) > 0 {
		out.Linef("")
		out.Linef("Files with errors (%d):", len(res.Failed))
		for _, f := range res.Failed {
			out.Linef("   - %s", f.Path)
		}
	}
}

func formatAvg(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// distinct counts the different non-empty values in col.
func distinct(t *model.Table, col string) int {
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		if k, ok := r.Get(col).Key(); ok {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
