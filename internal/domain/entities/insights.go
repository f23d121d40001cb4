package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Placeholders written when the model response cannot be parsed
const (
	ActionItemsParseFailure  = "Could not parse action items."
	KeyQuestionsParseFailure = "Could not parse key questions."
)

// FieldKind tags the shape held by a FieldValue
type FieldKind int

const (
	FieldScalar FieldKind = iota
	FieldActionList
	FieldStringList
	FieldGenericList
	FieldMapping
)

func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldActionList:
		return "action_list"
	case FieldStringList:
		return "string_list"
	case FieldGenericList:
		return "generic_list"
	case FieldMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// ActionItem is one extracted action with an optional owner
type ActionItem struct {
	Action string `json:"action"`
	Owner  string `json:"owner,omitempty"`
}

// FieldValue is one field of the model's structured output. Only the member
// matching Kind is set.
type FieldValue struct {
	Kind    FieldKind
	Scalar  string
	Actions []ActionItem
	Strings []string
	Items   []json.RawMessage
	Mapping json.RawMessage
}

// ScalarValue wraps plain text
func ScalarValue(s string) FieldValue {
	return FieldValue{Kind: FieldScalar, Scalar: s}
}

// ActionListValue wraps a list of action items
func ActionListValue(items ...ActionItem) FieldValue {
	return FieldValue{Kind: FieldActionList, Actions: items}
}

// StringListValue wraps a list of plain strings
func StringListValue(items ...string) FieldValue {
	return FieldValue{Kind: FieldStringList, Strings: items}
}

// UnmarshalJSON classifies arbitrary JSON into a FieldValue. Lists of objects
// carrying an "action" key are recognised before plain string lists.
func (f *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = ScalarValue("")
		return nil
	}

	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*f = classifyList(raw)
		return nil
	case '{':
		if !json.Valid(data) {
			return fmt.Errorf("invalid object")
		}
		*f = FieldValue{Kind: FieldMapping, Mapping: append(json.RawMessage(nil), data...)}
		return nil
	default:
		s, err := scalarString(data)
		if err != nil {
			return err
		}
		*f = ScalarValue(s)
		return nil
	}
}

// MarshalJSON renders the value back to its JSON shape
func (f FieldValue) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FieldActionList:
		return json.Marshal(f.Actions)
	case FieldStringList:
		return json.Marshal(f.Strings)
	case FieldGenericList:
		return json.Marshal(f.Items)
	case FieldMapping:
		if len(f.Mapping) == 0 {
			return []byte("{}"), nil
		}
		return f.Mapping, nil
	default:
		return json.Marshal(f.Scalar)
	}
}

func classifyList(raw []json.RawMessage) FieldValue {
	if len(raw) == 0 {
		return FieldValue{Kind: FieldGenericList, Items: raw}
	}

	if actions, ok := asActionList(raw); ok {
		return ActionListValue(actions...)
	}

	strs := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return FieldValue{Kind: FieldGenericList, Items: raw}
		}
		strs = append(strs, s)
	}
	return StringListValue(strs...)
}

func asActionList(raw []json.RawMessage) ([]ActionItem, bool) {
	items := make([]ActionItem, 0, len(raw))
	for i, elem := range raw {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			return nil, false
		}
		action, hasAction := obj["action"]
		if i == 0 && !hasAction {
			return nil, false
		}
		item := ActionItem{}
		if hasAction {
			item.Action, _ = scalarString(action)
		}
		if owner, ok := obj["owner"]; ok {
			item.Owner, _ = scalarString(owner)
		}
		items = append(items, item)
	}
	return items, true
}

// scalarString renders a JSON scalar as plain text; null becomes empty.
func scalarString(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	default:
		// nested value where a scalar was expected
		return string(bytes.TrimSpace(data)), nil
	}
}

// ExtractedInsights is the structured result of a model response.
// All three fields are always populated, even when parsing failed.
type ExtractedInsights struct {
	Summary      FieldValue `json:"summary"`
	ActionItems  FieldValue `json:"action_items"`
	KeyQuestions FieldValue `json:"key_questions"`

	// Parsed is false when the fallback was used.
	Parsed bool `json:"-"`
}

// FallbackInsights keeps the raw model text as the summary and flags the
// list fields for human review.
func FallbackInsights(raw string) *ExtractedInsights {
	return &ExtractedInsights{
		Summary:      ScalarValue(raw),
		ActionItems:  ScalarValue(ActionItemsParseFailure),
		KeyQuestions: ScalarValue(KeyQuestionsParseFailure),
		Parsed:       false,
	}
}
