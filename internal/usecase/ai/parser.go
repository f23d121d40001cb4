package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// fencePattern matches a markdown code block, optionally tagged json.
var fencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// insight keys the model is asked to return
var insightKeys = []string{"summary", "action_items", "key_questions"}

// Parser turns raw model output into ExtractedInsights
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Normalize never fails: output that cannot be parsed yields the fallback
// insights with the raw text as summary.
func (p *Parser) Normalize(raw string) *entities.ExtractedInsights {
	insights, err := p.ParseInsights(extractJSON(raw))
	if err != nil {
		return entities.FallbackInsights(raw)
	}
	return insights
}

// ParseInsights parses an unfenced JSON object holding the insight keys.
// Missing keys are left empty; an object with none of them is rejected.
func (p *Parser) ParseInsights(content string) (*entities.ExtractedInsights, error) {
	trimmed := bytes.TrimSpace([]byte(content))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("model output is not a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	found := 0
	for _, key := range insightKeys {
		if _, ok := fields[key]; ok {
			found++
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("missing %s in response", strings.Join(insightKeys, ", "))
	}

	result := &entities.ExtractedInsights{Parsed: true}
	targets := map[string]*entities.FieldValue{
		"summary":       &result.Summary,
		"action_items":  &result.ActionItems,
		"key_questions": &result.KeyQuestions,
	}
	for key, target := range targets {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, target); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", key, err)
		}
	}

	return result, nil
}

// extractJSON returns the trimmed body of the first fenced block, or the
// input unchanged when there is none.
func extractJSON(content string) string {
	match := fencePattern.FindStringSubmatch(content)
	if match == nil {
		return content
	}
	return strings.TrimSpace(match[1])
}
