package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/abenezer-t/bizpredict-backend/pkg/errors"
)

func TestComputeMetrics(t *testing.T) {
	actual := []float64{100, 200, 300}
	predicted := []float64{110, 190, 310}

	metrics, err := ComputeMetrics(actual, predicted)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, metrics.MAE, 1e-9)
	assert.InDelta(t, 10.0, metrics.RMSE, 1e-9)
	assert.True(t, metrics.MAPEDefined)
	// (10/100 + 10/200 + 10/300) / 3 * 100
	assert.InDelta(t, 6.111111, metrics.MAPE, 1e-4)
	// ss_res = 300, ss_tot = 20000
	assert.InDelta(t, 1-300.0/20000.0, metrics.R2, 1e-9)
}

func TestComputeMetricsRMSEEqualsMAEForConstantError(t *testing.T) {
	actual := []float64{50, 80, 120, 90}
	predicted := make([]float64, len(actual))
	for i, a := range actual {
		predicted[i] = a + 5
	}

	metrics, err := ComputeMetrics(actual, predicted)
	require.NoError(t, err)
	assert.InDelta(t, metrics.MAE, metrics.RMSE, 1e-9)
}

func TestComputeMetricsConstantActualGuardsR2(t *testing.T) {
	metrics, err := ComputeMetrics([]float64{100, 100, 100}, []float64{90, 110, 100})
	require.NoError(t, err)
	assert.Equal(t, 0.0, metrics.R2)
}

func TestComputeMetricsSkipsZeroActualsInMAPE(t *testing.T) {
	metrics, err := ComputeMetrics([]float64{0, 100}, []float64{10, 110})
	require.NoError(t, err)
	assert.True(t, metrics.MAPEDefined)
	assert.InDelta(t, 10.0, metrics.MAPE, 1e-9)

	metrics, err = ComputeMetrics([]float64{0, 0}, []float64{10, 10})
	require.NoError(t, err)
	assert.False(t, metrics.MAPEDefined)
	assert.Equal(t, 0.0, metrics.MAPE)
}

func TestComputeMetricsErrors(t *testing.T) {
	_, err := ComputeMetrics(nil, nil)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDegenerateMetric, appErr.Code())

	_, err = ComputeMetrics([]float64{1, 2}, []float64{1})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
