package ai

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Bullet prefixes every line of a flattened list
const Bullet = "• "

const ownerOpen = " (Owner: "

// FormattedInsights holds the flat text written to the record store
type FormattedInsights struct {
	Summary      string
	ActionItems  string
	KeyQuestions string
}

// FormatInsights flattens every field of in
func FormatInsights(in *entities.ExtractedInsights) FormattedInsights {
	if in == nil {
		return FormattedInsights{}
	}
	return FormattedInsights{
		Summary:      FormatField(in.Summary),
		ActionItems:  FormatField(in.ActionItems),
		KeyQuestions: FormatField(in.KeyQuestions),
	}
}

// FormatField renders a field value as the flat text stored on a record.
// It is total over every FieldKind.
func FormatField(v entities.FieldValue) string {
	switch v.Kind {
	case entities.FieldActionList:
		var b strings.Builder
		for _, item := range v.Actions {
			b.WriteString(Bullet)
			b.WriteString(item.Action)
			if item.Owner != "" {
				b.WriteString(ownerOpen)
				b.WriteString(item.Owner)
				b.WriteString(")")
			}
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), " \t\r\n")

	case entities.FieldStringList:
		lines := make([]string, len(v.Strings))
		for i, s := range v.Strings {
			lines[i] = Bullet + s
		}
		return strings.Join(lines, "\n")

	case entities.FieldGenericList:
		lines := make([]string, len(v.Items))
		for i, item := range v.Items {
			lines[i] = Bullet + stringifyJSON(item)
		}
		return strings.Join(lines, "\n")

	case entities.FieldMapping:
		var buf bytes.Buffer
		if err := json.Indent(&buf, v.Mapping, "", "  "); err != nil {
			return string(v.Mapping)
		}
		return buf.String()

	default:
		return v.Scalar
	}
}

// stringifyJSON renders a list element: strings as-is, anything else as compact JSON.
func stringifyJSON(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ParseBulletLines reverses the string-list encoding
func ParseBulletLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, Bullet)
	}
	return out
}

// ParseActionLines reverses the action-list encoding. An owner is recognised
// only as a trailing "(Owner: ...)" group.
func ParseActionLines(text string) []entities.ActionItem {
	lines := ParseBulletLines(text)
	if lines == nil {
		return nil
	}
	items := make([]entities.ActionItem, len(lines))
	for i, line := range lines {
		item := entities.ActionItem{Action: line}
		if strings.HasSuffix(line, ")") {
			if idx := strings.LastIndex(line, ownerOpen); idx >= 0 {
				item.Action = line[:idx]
				item.Owner = line[idx+len(ownerOpen) : len(line)-1]
			}
		}
		items[i] = item
	}
	return items
}
