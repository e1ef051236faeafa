package render

import (
	"fmt"
	"strings"

	"github.com/solacetech/solace-backend/internal/entity"
)

// Static bot texts.
const (
	MsgHelp = `🤖 *Solace AI Project Manager*

/start - start a new project questionnaire
/reset - discard answers and start over
/help - show this message

Answer the questions one by one. Once all of them are answered I can draft a construction plan and predict per-phase costs and durations.`

	ErrGeneric   = "❌ Something went wrong. Please try again or send /start."
	ErrNoSession = "No active session. Send /start to begin."
	ErrNotReady  = "⏳ A few questions are still open. Answer them first, then ask for the plan or estimates."

	MsgPlanPending      = "📋 Drafting the construction plan, this can take a minute..."
	MsgEstimatesPending = "💰 Running the cost and duration models..."
	MsgSessionRestarted = "🔄 Starting over."
	MsgAllAnswered      = "✅ All questions answered. What would you like next?"
)

// Answer renders the backend's reply to a regular chat message: the
// conversational reply, plus the action keyboard hint once the
// questionnaire is complete.
func Answer(st *entity.SessionStateDTO) string {
	if st.Reply != "" {
		return st.Reply
	}
	if st.NextQuestion != nil {
		return st.NextQuestion.Prompt
	}
	return MsgAllAnswered
}

// Plan renders a construction plan as a compact phase list. Subtask detail is
// deliberately omitted, the full document is available through the HTTP API.
func Plan(doc *entity.PlanDocument) string {
	var sb strings.Builder
	sb.WriteString("📋 *Construction plan*\n")

	for _, ph := range doc.ConstructionPhases {
		fmt.Fprintf(&sb, "\n*%s*\n%s\n", ph.PhaseName, ph.Description)
		if ph.EstimatedCost > 0 {
			fmt.Fprintf(&sb, "Cost: $%.0f, duration: %.0f weeks\n", ph.EstimatedCost, ph.DurationEstimate)
		}
		if len(ph.Subtasks) > 0 {
			fmt.Fprintf(&sb, "Subtasks: %d\n", len(ph.Subtasks))
		}
	}

	if len(doc.Resources) > 0 {
		sb.WriteString("\n*Resources & materials*\n")
		for category, items := range doc.Resources {
			fmt.Fprintf(&sb, "%s: %d items\n", category, len(items))
		}
	}

	return sb.String()
}

// Estimates renders the regression output per phase plus the reconciled
// material costs.
func Estimates(report *entity.EstimateReport) string {
	var sb strings.Builder
	sb.WriteString("💰 *Predicted estimates*\n\n")

	for _, ph := range report.Phases {
		fmt.Fprintf(&sb, "*%s*\n$%.0f over %.1f weeks\n", ph.Phase, ph.CostUSD, ph.DurationWeeks)
	}

	fmt.Fprintf(&sb, "\n*Total:* $%.0f, %.1f weeks\n", report.TotalCostUSD, report.TotalDurationWeeks)

	if len(report.Materials) > 0 {
		fmt.Fprintf(&sb, "\n*Materials* (reconciled): $%.0f\n", report.MaterialsTotalUSD)
		for _, m := range report.Materials {
			fmt.Fprintf(&sb, "• %s (%s): $%.0f\n", m.Item, m.Category, m.Cost)
		}
	}

	return sb.String()
}
