package forecast

import (
	"math"

	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

// EvaluationMetrics summarizes model fit against a held-out window.
// MAPE is undefined when every actual value is zero; MAPEDefined reports
// whether the value carries meaning.
type EvaluationMetrics struct {
	MAE         float64 `json:"mae"`
	RMSE        float64 `json:"rmse"`
	MAPE        float64 `json:"mape"`
	R2          float64 `json:"r2"`
	MAPEDefined bool    `json:"-"`
}

// ComputeMetrics calculates MAE, RMSE, MAPE, and R² for paired actual and
// predicted values. Zero actuals are skipped in MAPE rather than letting a
// division by zero poison the report; a constant actual series guards R²
// to zero.
func ComputeMetrics(actual, predicted []float64) (EvaluationMetrics, error) {
	if len(actual) == 0 {
		return EvaluationMetrics{}, pkgerrors.New(pkgerrors.CodeDegenerateMetric, "no holdout observations")
	}
	if len(actual) != len(predicted) {
		return EvaluationMetrics{}, pkgerrors.New(pkgerrors.CodeValidation, "actual and predicted lengths differ")
	}

	n := float64(len(actual))
	var absSum, sqSum, actualSum float64
	for i := range actual {
		diff := actual[i] - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		actualSum += actual[i]
	}
	mean := actualSum / n

	var ssTot float64
	for _, a := range actual {
		d := a - mean
		ssTot += d * d
	}

	var mapeSum float64
	var mapeCount int
	for i := range actual {
		if actual[i] == 0 {
			continue
		}
		mapeSum += math.Abs((actual[i] - predicted[i]) / actual[i])
		mapeCount++
	}

	metrics := EvaluationMetrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
	}
	if mapeCount > 0 {
		metrics.MAPE = mapeSum / float64(mapeCount) * 100
		metrics.MAPEDefined = true
	}
	if ssTot > 0 {
		metrics.R2 = 1 - sqSum/ssTot
	}
	return metrics, nil
}
