package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFromFencedBlock(t *testing.T) {
	fenced := "```json\n{\"a\":1}\n```"
	bare := `{"a":1}`

	gotFenced, err := ExtractJSON(fenced)
	require.NoError(t, err)
	gotBare, err := ExtractJSON(bare)
	require.NoError(t, err)

	assert.Equal(t, gotBare, gotFenced)
}

func TestExtractJSONIgnoresSurroundingProse(t *testing.T) {
	text := `Here is your plan: {"phases": [{"name": "Design"}]} Hope that helps!`

	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, `{"phases": [{"name": "Design"}]}`, got)
}

func TestExtractJSONHandlesBracesInsideStrings(t *testing.T) {
	text := `Note: {"comment": "use {curly} braces", "n": 1} trailing { prose`

	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, `{"comment": "use {curly} braces", "n": 1}`, got)
}

func TestExtractJSONTakesFirstTopLevelValue(t *testing.T) {
	text := `{"first": true} and later {"second": true}`

	got, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.Equal(t, `{"first": true}`, got)
}

func TestExtractJSONArray(t *testing.T) {
	got, err := ExtractJSON(`reply: [1, 2, {"x": "]"}]`)
	require.NoError(t, err)
	assert.Equal(t, `[1, 2, {"x": "]"}]`, got)
}

func TestExtractJSONFailures(t *testing.T) {
	for _, text := range []string{"no json here", `{"unbalanced": true`} {
		_, err := ExtractJSON(text)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "text=%q", text)
	}
}

func TestParsePlanDefaultsMissingCollections(t *testing.T) {
	text := `{"ConstructionPhases": [{"PhaseName": "I. Site Preperation", "Subtasks": [{"SubtaskName": "Survey"}]}]}`

	doc, err := ParsePlan(text)
	require.NoError(t, err)
	require.Len(t, doc.ConstructionPhases, 1)

	phase := doc.ConstructionPhases[0]
	assert.NotNil(t, phase.Vendors)
	assert.Empty(t, phase.Vendors)
	assert.NotNil(t, phase.Subtasks[0].Permissions)
	assert.NotNil(t, doc.Resources)
}

func TestParsePlanReturnsTypedErrorOnGarbage(t *testing.T) {
	_, err := ParsePlan(`{"ConstructionPhases": "not a list"}`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, errors.Unwrap(parseErr))
}

func TestParseDurationsKeepsRawStrings(t *testing.T) {
	text := "Here you go:\n```json\n" +
		`{"I. Scope": "3 weeks", "II. Design": 4, "V. Construction": "about 20"}` +
		"\n```"

	got, err := ParseDurations(text)
	require.NoError(t, err)
	assert.Equal(t, "3 weeks", got["I. Scope"])
	assert.Equal(t, "4", got["II. Design"])
	assert.Equal(t, "about 20", got["V. Construction"])
}
