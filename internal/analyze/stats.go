package analyze

import (
	"math"
	"sort"

	"github.com/sells-group/peer-eval-cli/internal/model"
)

// Report holds every statistic the analysis prints.
type Report struct {
	Basic         Basic
	Distribution  []LabelCount
	Self          *SelfEvaluation // nil when nobody rated themselves
	Participation Participation
	Roster        *RosterCoverage // nil unless a roster was given
}

// Basic is the headline block. Rating figures are NaN when no row has a
// numeric rating.
type Basic struct {
	Total           int
	UniqueEvaluator int
	UniqueEvaluated int
	MeanRating      float64
	MinRating       float64
	MaxRating       float64
}

// LabelCount is one line of the rating distribution.
type LabelCount struct {
	Label   string
	Count   int
	Percent float64 // of all rows
}

// SelfEvaluation compares ratings students gave themselves with the rest.
type SelfEvaluation struct {
	Count      int
	MeanSelf   float64
	MeanOthers float64 // NaN when every row is a self-evaluation
}

// Participation compares who submitted with who was rated.
type Participation struct {
	Submitters    []string
	Evaluated     []string
	NonSubmitters []string // evaluated but never submitted, sorted
}

// Compute derives the report from a combined table without modifying it.
func Compute(t *model.Table) *Report {
	rep := &Report{}

	ratings := t.Column(model.ColRating)
	rep.Basic = Basic{
		Total:           t.Len(),
		UniqueEvaluator: len(distinct(t.Column(model.ColEvaluatorID))),
		UniqueEvaluated: len(distinct(t.Column(model.ColEvaluatedID))),
		MeanRating:      mean(ratings),
		MinRating:       math.NaN(),
		MaxRating:       math.NaN(),
	}
	for _, v := range ratings {
		if !v.IsNumber() {
			continue
		}
		if math.IsNaN(rep.Basic.MinRating) || v.Num < rep.Basic.MinRating {
			rep.Basic.MinRating = v.Num
		}
		if math.IsNaN(rep.Basic.MaxRating) || v.Num > rep.Basic.MaxRating {
			rep.Basic.MaxRating = v.Num
		}
	}

	rep.Distribution = distribution(t)
	rep.Self = selfEvaluation(t)
	rep.Participation = participation(t)
	return rep
}

func distribution(t *model.Table) []LabelCount {
	counts := make(map[string]int)
	for _, v := range t.Column(model.ColRatingLabel) {
		if k, ok := v.Key(); ok {
			counts[k]++
		}
	}

	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	out := make([]LabelCount, len(labels))
	for i, l := range labels {
		out[i] = LabelCount{
			Label:   l,
			Count:   counts[l],
			Percent: float64(counts[l]) / float64(t.Len()) * 100,
		}
	}
	return out
}

// selfEvaluation splits rows on Evaluator ID == Evaluated ID. Rows missing
// either ID never count as self-evaluations.
func selfEvaluation(t *model.Table) *SelfEvaluation {
	var self, others []model.Value
	for _, r := range t.Rows {
		a, okA := r.Get(model.ColEvaluatorID).Key()
		b, okB := r.Get(model.ColEvaluatedID).Key()
		if okA && okB && a == b {
			self = append(self, r.Get(model.ColRating))
		} else {
			others = append(others, r.Get(model.ColRating))
		}
	}
	if len(self) == 0 {
		return nil
	}
	return &SelfEvaluation{
		Count:      len(self),
		MeanSelf:   mean(self),
		MeanOthers: mean(others),
	}
}

func participation(t *model.Table) Participation {
	submitters := distinct(t.Column(model.ColEvaluatorID))
	evaluated := distinct(t.Column(model.ColEvaluatedID))

	var missing []string
	for id := range evaluated {
		if _, ok := submitters[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)

	return Participation{
		Submitters:    sortedKeys(submitters),
		Evaluated:     sortedKeys(evaluated),
		NonSubmitters: missing,
	}
}

// mean averages the numeric cells, NaN when there are none.
func mean(vals []model.Value) float64 {
	var sum float64
	n := 0
	for _, v := range vals {
		if v.IsNumber() {
			sum += v.Num
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

func distinct(vals []model.Value) map[string]struct{} {
	set := make(map[string]struct{})
	for _, v := range vals {
		if k, ok := v.Key(); ok {
			set[k] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
