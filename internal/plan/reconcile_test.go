package plan

import (
	"testing"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(costs ...float64) []entity.AdjustedResource {
	out := make([]entity.AdjustedResource, len(costs))
	for i, c := range costs {
		out[i] = entity.AdjustedResource{Item: "item", Cost: c}
	}
	return out
}

func TestReconcileScalesProportionally(t *testing.T) {
	got := ReconcileResources(items(100, 200, 700), 1000)

	// threshold 600, sum 1000, delta 400: every item loses 40% of its cost
	require.Len(t, got, 3)
	assert.InDelta(t, 60, got[0].Cost, 1e-9)
	assert.InDelta(t, 120, got[1].Cost, 1e-9)
	assert.InDelta(t, 420, got[2].Cost, 1e-9)
	assert.InDelta(t, 600, TotalCost(got), 1e-9)
}

func TestReconcileUnderThresholdUnchanged(t *testing.T) {
	got := ReconcileResources(items(100, 200), 1000)
	assert.InDelta(t, 100, got[0].Cost, 1e-9)
	assert.InDelta(t, 200, got[1].Cost, 1e-9)
}

func TestReconcileZeroTotalPassesThrough(t *testing.T) {
	// threshold 0 with a zero original sum: nothing to scale, no div by zero
	got := ReconcileResources(items(0, 0), 0)
	assert.InDelta(t, 0, got[0].Cost, 1e-9)

	got = ReconcileResources(nil, 1000)
	assert.Empty(t, got)
}

func TestReconcileFloorsAtOne(t *testing.T) {
	// threshold 6, sum 150, delta 144: the two small items would drop to
	// 0.04 and get clamped to 1, the large one lands at 5.92. The clamped
	// sum (7.92) overshoots the threshold, a known approximation
	got := ReconcileResources(items(1, 1, 148), 10)
	require.Len(t, got, 3)
	assert.InDelta(t, 1, got[0].Cost, 1e-9)
	assert.InDelta(t, 1, got[1].Cost, 1e-9)
	assert.InDelta(t, 5.92, got[2].Cost, 1e-9)
	assert.GreaterOrEqual(t, TotalCost(got), 0.6*10)
}

func TestReconcileZeroThresholdClampsEverything(t *testing.T) {
	// predicted total 0 with a nonzero sum: the whole sum is delta, every
	// item drops to the floor
	got := ReconcileResources(items(50, 50, 50), 0)
	require.Len(t, got, 3)
	for _, item := range got {
		assert.InDelta(t, 1, item.Cost, 1e-9)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	in := items(100, 900)
	_ = ReconcileResources(in, 100)
	assert.InDelta(t, 100, in[0].Cost, 1e-9)
	assert.InDelta(t, 900, in[1].Cost, 1e-9)
}

func TestFlattenResourcesStableCategoryOrder(t *testing.T) {
	doc := &entity.PlanDocument{
		Resources: map[string][]entity.ResourceItem{
			"Steel":    {{Item: "Rebar", QuantityEstimate: "40 metric tonne", EstimatedCost: 90000}},
			"Concrete": {{Item: "Ready-mix", QuantityEstimate: "300 cubic yards", EstimatedCost: 45000}},
		},
	}

	got := FlattenResources(doc)
	require.Len(t, got, 2)
	assert.Equal(t, "Concrete", got[0].Category)
	assert.Equal(t, "Steel", got[1].Category)

	assert.Nil(t, FlattenResources(nil))
}
