package analyze

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/peer-eval-cli/internal/report"
)

// Print writes the analysis report.
func Print(out report.Reporter, rep *Report) {
	out.Linef("")
	out.Linef("ANALYSIS REPORT")
	out.Linef("%s", report.Rule(50))

	b := rep.Basic
	out.Linef("BASIC STATISTICS")
	out.Linef("   Total evaluations: %d", b.Total)
	out.Linef("   Unique evaluators: %d", b.UniqueEvaluator)
	out.Linef("   Unique evaluated students: %d", b.UniqueEvaluated)
	out.Linef("   Average rating: %s", fmt1(b.MeanRating))
	out.Linef("   Rating range: %s - %s", fmt1(b.MinRating), fmt1(b.MaxRating))

	out.Linef("")
	out.Linef("RATING DISTRIBUTION")
	for _, d := range rep.Distribution {
		out.Linef("   %s: %d (%.1f%%)", d.Label, d.Count, d.Percent)
	}

	if s := rep.Self; s != nil {
		out.Linef("")
		out.Linef("SELF-EVALUATION ANALYSIS")
		out.Linef("   Self-evaluations: %d", s.Count)
		out.Linef("   Average self-rating: %s", fmt1(s.MeanSelf))
		out.Linef("   Average rating of others: %s", fmt1(s.MeanOthers))
	}

	p := rep.Participation
	out.Linef("")
	out.Linef("PARTICIPATION ANALYSIS")
	out.Linef("   Students who submitted: %d", len(p.Submitters))
	out.Linef("   Students who were evaluated: %d", len(p.Evaluated))
	if len(p.NonSubmitters) > 0 {
		out.Linef("   Students who didn't submit: %d", len(p.NonSubmitters))
		out.Linef("   Non-submitters: %s", strings.Join(p.NonSubmitters, ", "))
	}

	if c := rep.Roster; c != nil {
		out.Linef("")
		out.Linef("ROSTER COVERAGE")
		out.Linef("   Students on roster: %d", c.Size)
		out.Linef("   Submission rate: %.1f%%", c.SubmissionRate)
		if len(c.Missing) > 0 {
			out.Linef("   Roster students with no submission: %d", len(c.Missing))
			for _, s := range c.Missing {
				if s.Name == "" {
					out.Linef("   - %s", s.ID)
					continue
				}
				out.Linef("   - %s (%s)", s.ID, s.Name)
			}
		}
	}
}

func fmt1(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}
