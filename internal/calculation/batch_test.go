package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch_PreservesOrderAndIsolatesErrors(t *testing.T) {
	engine := newTestEngine()
	ref := zeroReference(t)

	broken := ref
	broken.Base = nil

	low := plainPolicy()
	low.IllustratedReturnPct = decimal.NewFromInt(1)
	high := plainPolicy()
	high.IllustratedReturnPct = decimal.NewFromInt(8)

	jobs := []BatchJob{
		{Name: "low", Params: low, Reference: ref, Years: 10},
		{Name: "broken", Params: plainPolicy(), Reference: broken},
		{Name: "high", Params: high, Reference: ref, Years: 10},
	}

	results, err := engine.RunBatch(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "low", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Projection.Records, 10)
	assert.Equal(t, "low", results[0].Projection.Name)

	assert.Equal(t, "broken", results[1].Name)
	assert.True(t, errors.Is(results[1].Err, ErrConfiguration))
	assert.Nil(t, results[1].Projection)

	assert.NoError(t, results[2].Err)
	assert.True(t, results[2].Projection.Summary.FinalAccountValue.GreaterThan(results[0].Projection.Summary.FinalAccountValue))
}

func TestRunBatch_CancelledBeforeStart(t *testing.T) {
	engine := newTestEngine()
	ref := zeroReference(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := engine.RunBatch(ctx, []BatchJob{
		{Name: "a", Params: plainPolicy(), Reference: ref},
		{Name: "b", Params: plainPolicy(), Reference: ref},
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Projection)
	}
}

func TestRunBatch_Empty(t *testing.T) {
	results, err := newTestEngine().RunBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
