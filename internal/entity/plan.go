package entity

// PlanDocument is the structured construction plan parsed from the LLM's
// response. Field names mirror the JSON schema the model is instructed to
// emit, so the document round-trips without a mapping layer.
type PlanDocument struct {
	ConstructionPhases []PlanPhase               `json:"ConstructionPhases"`
	Resources          map[string][]ResourceItem `json:"Resources & Materials"`
}

type PlanPhase struct {
	PhaseName        string        `json:"PhaseName"`
	Description      string        `json:"Description"`
	EstimatedCost    float64       `json:"EstimatedCost"`
	DurationEstimate float64       `json:"DurationEstimate"`
	Subtasks         []PlanSubtask `json:"Subtasks"`
	LaborCategories  []string      `json:"LaborCategories"`
	Vendors          []string      `json:"Vendors"`
	Permissions      []string      `json:"Permissions"`
}

type PlanSubtask struct {
	SubtaskName      string   `json:"SubtaskName"`
	Description      string   `json:"Description"`
	CostEstimate     float64  `json:"CostEstimate"`
	DurationEstimate float64  `json:"DurationEstimate"`
	LaborCategories  []string `json:"LaborCategories"`
	Vendors          []string `json:"Vendors"`
	Permissions      []string `json:"Permissions"`
}

// ResourceItem is one raw-material or equipment line item.
type ResourceItem struct {
	Item             string  `json:"Item"`
	QuantityEstimate string  `json:"QuantityEstimate"`
	EstimatedCost    float64 `json:"EstimatedCost"`
}

// Normalize replaces nil collections with empty ones so that a plan with
// missing optional fields renders and serializes without nil checks at every
// call site.
func (p *PlanDocument) Normalize() {
	if p.ConstructionPhases == nil {
		p.ConstructionPhases = []PlanPhase{}
	}
	if p.Resources == nil {
		p.Resources = map[string][]ResourceItem{}
	}
	for i := range p.ConstructionPhases {
		ph := &p.ConstructionPhases[i]
		if ph.Subtasks == nil {
			ph.Subtasks = []PlanSubtask{}
		}
		if ph.LaborCategories == nil {
			ph.LaborCategories = []string{}
		}
		if ph.Vendors == nil {
			ph.Vendors = []string{}
		}
		if ph.Permissions == nil {
			ph.Permissions = []string{}
		}
		for j := range ph.Subtasks {
			sub := &ph.Subtasks[j]
			if sub.LaborCategories == nil {
				sub.LaborCategories = []string{}
			}
			if sub.Vendors == nil {
				sub.Vendors = []string{}
			}
			if sub.Permissions == nil {
				sub.Permissions = []string{}
			}
		}
	}
	for cat, items := range p.Resources {
		if items == nil {
			p.Resources[cat] = []ResourceItem{}
		}
	}
}

// PhaseEstimate is one phase's ML-predicted duration and cost. Produced fresh
// on every estimation request, never persisted.
type PhaseEstimate struct {
	Phase         string  `json:"phase"`
	DurationWeeks float64 `json:"predicted_duration_weeks"`
	CostUSD       float64 `json:"predicted_cost_usd"`
}

// AdjustedResource is a resource line item after cost reconciliation against
// the predicted project total. Derived, never stored.
type AdjustedResource struct {
	Category         string  `json:"category"`
	Item             string  `json:"item"`
	QuantityEstimate string  `json:"quantity_estimate"`
	Cost             float64 `json:"cost_usd"`
}

// EstimateReport bundles everything the estimates endpoint returns: per-phase
// predictions, their totals, and the plan's materials rescaled against the
// predicted total cost (empty when no plan has been generated yet).
type EstimateReport struct {
	Phases             []PhaseEstimate    `json:"phases"`
	TotalCostUSD       float64            `json:"total_cost_usd"`
	TotalDurationWeeks float64            `json:"total_duration_weeks"`
	Materials          []AdjustedResource `json:"materials"`
	MaterialsTotalUSD  float64            `json:"materials_total_usd"`
}
