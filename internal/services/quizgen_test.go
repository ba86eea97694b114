package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneratedQuestions(t *testing.T) {
	content := `{
		"questions": [
			{
				"text": "Where did we first meet?",
				"options": ["At work", "At a party", "Online"],
				"correct_index": 1,
				"explanation": "It was the new year party."
			},
			{
				"text": "",
				"options": ["a", "b"],
				"correct_index": 0
			},
			{
				"text": "Bad index",
				"options": ["a", "b"],
				"correct_index": 5
			}
		]
	}`

	inputs, err := parseGeneratedQuestions(content)
	require.NoError(t, err)
	require.Len(t, inputs, 1)

	q := inputs[0]
	assert.Equal(t, "Where did we first meet?", q.Text)
	assert.Equal(t, "It was the new year party.", q.Explanation)
	require.Len(t, q.Options, 3)
	assert.False(t, q.Options[0].IsCorrect)
	assert.True(t, q.Options[1].IsCorrect)
	assert.False(t, q.Options[2].IsCorrect)
}

func TestParseGeneratedQuestionsFenced(t *testing.T) {
	content := "```json\n{\"questions\":[{\"text\":\"Q\",\"options\":[\"a\",\"b\"],\"correct_index\":0}]}\n```"

	inputs, err := parseGeneratedQuestions(content)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.True(t, inputs[0].Options[0].IsCorrect)
}

func TestParseGeneratedQuestionsInvalidJSON(t *testing.T) {
	_, err := parseGeneratedQuestions("Sure! Here are your questions:")
	assert.Error(t, err)
}

func TestCleanJSONContent(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONContent("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONContent("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONContent(`  {"a":1}  `))
}
