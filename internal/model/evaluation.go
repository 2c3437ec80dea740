package model

// Evaluation CSV columns as written by the evaluation form.
const (
	ColEvaluatorID   = "Evaluator ID"
	ColEvaluatorName = "Evaluator Name"
	ColEvaluatedID   = "Evaluated ID"
	ColEvaluatedName = "Evaluated Name"
	ColRating        = "Rating"
	ColRatingLabel   = "Rating Label"
	ColComment       = "Comment"
	ColTimestamp     = "Timestamp"

	// ColSourceFile records which input file a merged row came from.
	ColSourceFile = "Source_File"
)

// EvaluationColumns is the header every submission file is expected to carry.
var EvaluationColumns = []string{
	ColEvaluatorID,
	ColEvaluatorName,
	ColEvaluatedID,
	ColEvaluatedName,
	ColRating,
	ColRatingLabel,
	ColComment,
	ColTimestamp,
}

// MergeOrder is the sort key of the combined file.
var MergeOrder = []string{ColEvaluatorID, ColTimestamp}
