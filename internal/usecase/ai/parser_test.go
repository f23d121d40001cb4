package ai

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tagged fence with prose",
			input:    "Here you go:\n```json\n{\"summary\": \"x\"}\n```\nHope this helps!",
			expected: `{"summary": "x"}`,
		},
		{
			name:     "untagged fence",
			input:    "```\n  {\"a\": 1}  \n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "first of several fences",
			input:    "```json\n{\"first\": true}\n```\nand\n```json\n{\"second\": true}\n```",
			expected: `{"first": true}`,
		},
		{
			name:     "no fence is a no-op",
			input:    "  {\"summary\": \"plain\"}\n",
			expected: "  {\"summary\": \"plain\"}\n",
		},
		{
			name:     "unterminated fence is a no-op",
			input:    "```json\n{\"summary\": 1}",
			expected: "```json\n{\"summary\": 1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}

func TestNormalize_ParsesStructuredOutput(t *testing.T) {
	raw := `{"summary":"Plan to ship Friday","action_items":[{"action":"Ship feature","owner":"Alice"}],"key_questions":["Who owns QA?"]}`

	insights := NewParser().Normalize(raw)

	require.True(t, insights.Parsed)
	assert.Equal(t, entities.ScalarValue("Plan to ship Friday"), insights.Summary)
	assert.Equal(t, entities.FieldActionList, insights.ActionItems.Kind)
	assert.Equal(t, []entities.ActionItem{{Action: "Ship feature", Owner: "Alice"}}, insights.ActionItems.Actions)
	assert.Equal(t, entities.StringListValue("Who owns QA?"), insights.KeyQuestions)
}

func TestNormalize_FencedOutput(t *testing.T) {
	raw := "Sure! Here is the analysis:\n```json\n{\"summary\": \"Short\", \"action_items\": [], \"key_questions\": []}\n```"

	insights := NewParser().Normalize(raw)

	require.True(t, insights.Parsed)
	assert.Equal(t, "Short", insights.Summary.Scalar)
}

func TestNormalize_FallbackKeepsAllFields(t *testing.T) {
	for _, raw := range []string{
		"The meeting covered the roadmap.",
		"```json\n{not json}\n```",
		`["a", "b"]`,
		`{"unrelated": 1}`,
		"",
	} {
		insights := NewParser().Normalize(raw)

		assert.False(t, insights.Parsed, raw)
		assert.Equal(t, entities.ScalarValue(raw), insights.Summary)
		assert.Equal(t, entities.ScalarValue("Could not parse action items."), insights.ActionItems)
		assert.Equal(t, entities.ScalarValue("Could not parse key questions."), insights.KeyQuestions)
	}
}

func TestNormalize_MissingKeysReadAsEmpty(t *testing.T) {
	insights := NewParser().Normalize(`{"summary": "Only a summary"}`)

	require.True(t, insights.Parsed)
	assert.Equal(t, "Only a summary", insights.Summary.Scalar)
	assert.Equal(t, entities.ScalarValue(""), insights.ActionItems)
	assert.Equal(t, entities.ScalarValue(""), insights.KeyQuestions)
}

func TestNormalize_WholeResult(t *testing.T) {
	raw := "```json\n" + `{
  "summary": "Release moved to Friday",
  "action_items": [{"action": "Cut the branch", "owner": "Ana"}, {"action": "Update changelog"}],
  "key_questions": ["Who signs off?", "Is QA staffed?"]
}` + "\n```"

	want := &entities.ExtractedInsights{
		Summary: entities.ScalarValue("Release moved to Friday"),
		ActionItems: entities.ActionListValue(
			entities.ActionItem{Action: "Cut the branch", Owner: "Ana"},
			entities.ActionItem{Action: "Update changelog"},
		),
		KeyQuestions: entities.StringListValue("Who signs off?", "Is QA staffed?"),
		Parsed:       true,
	}

	got := NewParser().Normalize(raw)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}
