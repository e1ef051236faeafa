// Package plan builds the LLM prompts and defensively parses the structured
// plan out of the model's free-text replies.
package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/solacetech/solace-backend/internal/predictor"
)

// System instructions for the three call sites.
const (
	ConversationSystemRole = "You are an expert NYC school construction planner assistant."
	PlanSystemRole         = "You summarize the project info and generate the final JSON plan."
	DurationsSystemRole    = "You are an expert NYC school construction planner."
)

// WelcomeMessage opens every new session.
const WelcomeMessage = "Hi, welcome to the Solace AI Project Manager 👋\n\n" +
	"I can generate a project plan for a new school development in New York City based on your requirements.\n\n" +
	"Can I help make the plan for you?"

// answersBlock serializes the collected answers as a JSON object with keys in
// questionnaire declaration order. The fixed ordering makes repeated calls
// with identical answers byte-identical, which prompt caching and tests rely
// on (encoding/json map marshaling sorts keys, which would reorder fields
// whenever the question list is not alphabetical).
func answersBlock(specs []entity.QuestionSpec, answers map[entity.QuestionKey]*string) string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, spec := range specs {
		b.WriteString("  ")
		b.WriteString(strconv.Quote(string(spec.Key)))
		b.WriteString(": ")
		if v := answers[spec.Key]; v != nil {
			b.WriteString(strconv.Quote(*v))
		} else {
			b.WriteString("null")
		}
		if i < len(specs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// BuildConversationPrompt produces the system prompt for the chat turn that
// acknowledges the user's answer and asks the next question. When next is nil
// all questions are answered and the model is told to offer plan generation.
func BuildConversationPrompt(specs []entity.QuestionSpec, answers map[entity.QuestionKey]*string, next *entity.QuestionSpec) string {
	if next != nil {
		return fmt.Sprintf(`You are an expert NYC school construction planner assistant.

Current collected info:
%s

Ask only the questions defined and wait for the user response, do not repeat a question.
Do not display unnecessary information or the previous questions asked. Do provide the average for each value, like average square footage required for a school construction and average class size.
Do not display json to the user.
Also tell the user that they are advised to answer the questions asked and can provide more information for context but they will be asked the guided questions.
Next question:
%s
`, answersBlock(specs, answers), next.Prompt)
	}

	return fmt.Sprintf(`You have collected all the necessary project information:
%s

Display it in a formatted way, not json.
Inform the user that all info is collected and ask if they want to generate the construction plan.
Ask each question only once, do not repeat the previous question.
`, answersBlock(specs, answers))
}

// BuildPlanPrompt produces the instruction that asks for the final structured
// construction plan as JSON. The schema here is the wire contract
// entity.PlanDocument decodes.
func BuildPlanPrompt(specs []entity.QuestionSpec, answers map[entity.QuestionKey]*string) string {
	return fmt.Sprintf(`Using the collected info, generate a detailed construction plan in JSON format with phases, subtasks, vendors, permissions, materials, and labor.

Output should be a list of 5 phases: "I. Site Preperation", "II. Foundation", "III. Commissioning", "IV. Purchase & Install", "V. Construction". Each phase must include:
- PhaseName: (string)
- Description: (string), a short description
- EstimatedCost: (number)
- DurationEstimate: (number), duration in weeks, realistic values based on actual construction timelines; if the user provided a timeline try to stay in that ballpark unless it is unrealistic
- Subtasks: 5-10 sub tasks within the phase, each with SubtaskName, Description, CostEstimate, DurationEstimate, LaborCategories, Vendors, Permissions
- LaborCategories: (list of strings)
- Vendors: (list of strings), 1-2 only actual NYC-based vendors or well-known relevant companies, not made up names (avoid placeholders like 'VendorX', 'VendorA')
- Permissions: (list of strings), required NYC government permissions (e.g., SCA, DoE, FDNY)

Also include a "Resources & Materials" section keyed by category. Each item must have:
- Item: the name, describing for which phases and subtasks it is needed
- QuantityEstimate: number followed by correct units e.g. metric tonne, feet
- EstimatedCost: (number), realistic values; the total of all resources should not exceed 60%% of the total estimated cost

Collected info:
%s

Only output JSON with this structure:
{
"ConstructionPhases": [
  {
  "PhaseName": "string",
  "Description": "string",
  "EstimatedCost": number,
  "DurationEstimate": number,
  "Subtasks": [
    {
    "SubtaskName": "string",
    "Description": "string",
    "CostEstimate": number,
    "DurationEstimate": number,
    "LaborCategories": [],
    "Vendors": [],
    "Permissions": []
    }
  ],
  "LaborCategories": [],
  "Vendors": [],
  "Permissions": []
  }
],
"Resources & Materials": {
  "CategoryName": [
  {
    "Item": "string",
    "QuantityEstimate": "string",
    "EstimatedCost": number
  }
  ]
}
}
No extra explanation.
`, answersBlock(specs, answers))
}

// BuildDurationsPrompt asks for a per-phase duration estimate keyed by the
// model-training phase codes.
func BuildDurationsPrompt(description string) string {
	var phases strings.Builder
	var schema strings.Builder
	for i, p := range predictor.Phases {
		fmt.Fprintf(&phases, "  %s: %s\n", p.Code, p.Display)
		fmt.Fprintf(&schema, "    %s: \"<duration in weeks>\"", strconv.Quote(p.Code))
		if i < len(predictor.Phases)-1 {
			schema.WriteString(",")
		}
		schema.WriteString("\n")
	}

	return fmt.Sprintf(`Based on the following project description, estimate the expected duration in weeks for each of the following construction phases, answer in numeric, no ranges:

Phases:
%s
Project Description:
%s

Reply in this format (JSON):
{
%s}
`, phases.String(), description, schema.String())
}
