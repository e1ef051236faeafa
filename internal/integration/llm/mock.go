package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/solacetech/solace-backend/internal/entity"
)

// MockConnector is a canned-response LLM for local development without an
// API key. It routes on markers in the prompt text: plan requests get a small
// valid plan document, duration requests get the numeric map, everything else
// gets a short conversational reply.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

const mockPlanJSON = `{
"ConstructionPhases": [
  {
    "PhaseName": "I. Site Preperation",
    "Description": "Survey, clear and secure the construction site.",
    "EstimatedCost": 250000,
    "DurationEstimate": 6,
    "Subtasks": [
      {
        "SubtaskName": "Site survey",
        "Description": "Topographic and utility survey of the lot.",
        "CostEstimate": 40000,
        "DurationEstimate": 2,
        "LaborCategories": ["Surveyors"],
        "Vendors": ["Langan"],
        "Permissions": ["SCA"]
      },
      {
        "SubtaskName": "Demolition and clearing",
        "Description": "Remove existing structures and debris.",
        "CostEstimate": 210000,
        "DurationEstimate": 4,
        "LaborCategories": ["Demolition crew"],
        "Vendors": ["Breeze National"],
        "Permissions": ["DOB"]
      }
    ],
    "LaborCategories": ["Surveyors", "Demolition crew"],
    "Vendors": ["Langan", "Breeze National"],
    "Permissions": ["SCA", "DOB"]
  },
  {
    "PhaseName": "II. Foundation",
    "Description": "Excavation and foundation work.",
    "EstimatedCost": 900000,
    "DurationEstimate": 10,
    "Subtasks": [
      {
        "SubtaskName": "Excavation",
        "Description": "Dig to foundation depth and shore.",
        "CostEstimate": 300000,
        "DurationEstimate": 4,
        "LaborCategories": ["Excavation crew"],
        "Vendors": ["Skanska"],
        "Permissions": ["DOB"]
      },
      {
        "SubtaskName": "Concrete pour",
        "Description": "Pour footings and foundation walls.",
        "CostEstimate": 600000,
        "DurationEstimate": 6,
        "LaborCategories": ["Concrete workers"],
        "Vendors": ["Ferrara Bros"],
        "Permissions": ["DOB", "FDNY"]
      }
    ],
    "LaborCategories": ["Excavation crew", "Concrete workers"],
    "Vendors": ["Skanska", "Ferrara Bros"],
    "Permissions": ["DOB", "FDNY"]
  },
  {
    "PhaseName": "III. Commissioning",
    "Description": "Inspections, certifications and handover.",
    "EstimatedCost": 150000,
    "DurationEstimate": 4,
    "Subtasks": [],
    "LaborCategories": ["Inspectors"],
    "Vendors": ["TUV Rheinland"],
    "Permissions": ["SCA", "DoE", "FDNY"]
  },
  {
    "PhaseName": "IV. Purchase & Install",
    "Description": "Procure and install fixtures and equipment.",
    "EstimatedCost": 500000,
    "DurationEstimate": 8,
    "Subtasks": [],
    "LaborCategories": ["Electricians", "Installers"],
    "Vendors": ["W.B. Mason"],
    "Permissions": ["DoE"]
  },
  {
    "PhaseName": "V. Construction",
    "Description": "Structural build-out and finishing.",
    "EstimatedCost": 3200000,
    "DurationEstimate": 40,
    "Subtasks": [],
    "LaborCategories": ["Carpenters", "Steel workers", "Plumbers"],
    "Vendors": ["Turner Construction"],
    "Permissions": ["SCA", "DOB", "FDNY"]
  }
],
"Resources & Materials": {
  "Structural": [
    {"Item": "Structural steel for phases II and V", "QuantityEstimate": "120 metric tonne", "EstimatedCost": 480000},
    {"Item": "Ready-mix concrete for phase II", "QuantityEstimate": "800 cubic yards", "EstimatedCost": 160000}
  ],
  "Finishing": [
    {"Item": "Drywall and paint for phase V", "QuantityEstimate": "90000 square feet", "EstimatedCost": 135000}
  ]
}
}`

const mockDurationsJSON = `{
  "I. Scope": "6",
  "II. Design": "10",
  "III. Commissioning": "4",
  "IV. Purch & Install": "8",
  "V. Construction": "40"
}`

// Complete routes on prompt markers and returns a canned reply.
func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion", zap.Int("message_count", len(messages)))

	prompt := lastByRole(messages, entity.ChatRoleSystem) + "\n" + lastByRole(messages, entity.ChatRoleUser)

	switch {
	case strings.Contains(prompt, "Only output JSON with this structure"):
		return mockPlanJSON, nil
	case strings.Contains(prompt, "estimate the expected duration in weeks"):
		return mockDurationsJSON, nil
	case strings.Contains(prompt, "Next question:"):
		question := prompt[strings.Index(prompt, "Next question:")+len("Next question:"):]
		return "Thanks, noted. " + strings.TrimSpace(question), nil
	default:
		return "All project information has been collected. Would you like me to generate the construction plan?", nil
	}
}

func lastByRole(messages []entity.ChatMessage, role entity.ChatRole) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == role {
			return messages[i].Content
		}
	}
	return ""
}
