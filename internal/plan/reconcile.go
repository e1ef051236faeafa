package plan

import (
	"sort"

	"github.com/solacetech/solace-backend/internal/entity"
)

// resourceCostCap is the fraction of the predicted total project cost that
// the sum of all material costs may not exceed.
const resourceCostCap = 0.6

// minResourceCost is the floor for an adjusted line item. Keeps display
// values from hitting zero or going negative when a large delta is
// distributed over small items.
const minResourceCost = 1

// FlattenResources turns the plan's category → items map into a flat list,
// category-sorted so the output order is stable across calls.
func FlattenResources(doc *entity.PlanDocument) []entity.AdjustedResource {
	if doc == nil {
		return nil
	}
	categories := make([]string, 0, len(doc.Resources))
	for cat := range doc.Resources {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var out []entity.AdjustedResource
	for _, cat := range categories {
		for _, item := range doc.Resources[cat] {
			out = append(out, entity.AdjustedResource{
				Category:         cat,
				Item:             item.Item,
				QuantityEstimate: item.QuantityEstimate,
				Cost:             item.EstimatedCost,
			})
		}
	}
	return out
}

// ReconcileResources rescales the material costs so their sum stays within
// resourceCostCap of the independently predicted total project cost,
// preserving each item's share of the original sum.
//
// Every adjusted cost is floored at minResourceCost; when the floor clamps
// several items the adjusted sum can land slightly above the threshold. That
// is a known approximation, kept as-is. A zero original sum passes items
// through untouched; a zero predicted total with a nonzero sum distributes
// the full sum as delta, so every item clamps to the floor.
func ReconcileResources(items []entity.AdjustedResource, totalPredictedCost float64) []entity.AdjustedResource {
	out := make([]entity.AdjustedResource, len(items))
	copy(out, items)

	originalSum := 0.0
	for _, item := range out {
		originalSum += item.Cost
	}
	if originalSum == 0 {
		return out
	}

	threshold := resourceCostCap * totalPredictedCost
	if originalSum <= threshold {
		return out
	}

	delta := originalSum - threshold
	for i := range out {
		adjustment := (out[i].Cost / originalSum) * delta
		adjusted := out[i].Cost - adjustment
		if adjusted < minResourceCost {
			adjusted = minResourceCost
		}
		out[i].Cost = adjusted
	}
	return out
}

// TotalCost sums a reconciled list for display.
func TotalCost(items []entity.AdjustedResource) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Cost
	}
	return sum
}
