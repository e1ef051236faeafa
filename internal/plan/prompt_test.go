package plan

import (
	"strings"
	"testing"

	"github.com/solacetech/solace-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptFixtures() ([]entity.QuestionSpec, map[entity.QuestionKey]*string) {
	specs := []entity.QuestionSpec{
		{Key: "ProjectDescription", Prompt: "Please describe the project in a few sentences."},
		{Key: "Location", Prompt: "Which part of NYC is the school located in?"},
		{Key: "Grades", Prompt: "How many grades will the school have?"},
	}
	desc := "A new elementary school in Queens"
	loc := "Queens"
	answers := map[entity.QuestionKey]*string{
		"ProjectDescription": &desc,
		"Location":           &loc,
		"Grades":             nil,
	}
	return specs, answers
}

func TestPromptsAreByteIdenticalForSameAnswers(t *testing.T) {
	specs, answers := promptFixtures()

	next := &specs[2]
	assert.Equal(t,
		BuildConversationPrompt(specs, answers, next),
		BuildConversationPrompt(specs, answers, next))
	assert.Equal(t,
		BuildPlanPrompt(specs, answers),
		BuildPlanPrompt(specs, answers))
	assert.Equal(t,
		BuildDurationsPrompt("a school"),
		BuildDurationsPrompt("a school"))
}

func TestAnswersBlockKeepsDeclarationOrder(t *testing.T) {
	specs, answers := promptFixtures()

	block := answersBlock(specs, answers)
	descIdx := strings.Index(block, "ProjectDescription")
	locIdx := strings.Index(block, "Location")
	gradesIdx := strings.Index(block, "Grades")
	require.True(t, descIdx >= 0 && locIdx >= 0 && gradesIdx >= 0)
	assert.Less(t, descIdx, locIdx)
	assert.Less(t, locIdx, gradesIdx)
	assert.Contains(t, block, `"Grades": null`)
}

func TestConversationPromptMentionsNextQuestion(t *testing.T) {
	specs, answers := promptFixtures()

	withNext := BuildConversationPrompt(specs, answers, &specs[2])
	assert.Contains(t, withNext, specs[2].Prompt)

	complete := BuildConversationPrompt(specs, answers, nil)
	assert.Contains(t, complete, "generate the construction plan")
}

func TestPlanPromptCarriesSchemaAndAnswers(t *testing.T) {
	specs, answers := promptFixtures()

	prompt := BuildPlanPrompt(specs, answers)
	assert.Contains(t, prompt, `"ConstructionPhases"`)
	assert.Contains(t, prompt, `"Resources & Materials"`)
	assert.Contains(t, prompt, "A new elementary school in Queens")
}

func TestDurationsPromptListsEveryPhaseCode(t *testing.T) {
	prompt := BuildDurationsPrompt("a school")
	for _, code := range []string{"I. Scope", "II. Design", "III. Commissioning", "IV. Purch & Install", "V. Construction"} {
		assert.Contains(t, prompt, code)
	}
}
