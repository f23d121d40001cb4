package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

const bullet = "• "

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.5; color: #222;">
<h2>Meeting Summary: {{.MeetingName}}</h2>
<h3>Summary</h3>
{{- range .Summary}}
<p>{{.}}</p>
{{- else}}
<p><em>No summary available.</em></p>
{{- end}}
<h3>Action Items</h3>
{{- if .ActionItems}}
<ul>
{{- range .ActionItems}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- else}}
<p><em>No action items.</em></p>
{{- end}}
<h3>Key Questions</h3>
{{- if .KeyQuestions}}
<ul>
{{- range .KeyQuestions}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- else}}
<p><em>No open questions.</em></p>
{{- end}}
{{- if .RecordURL}}
<p><a href="{{.RecordURL}}">View the full record</a></p>
{{- end}}
</body>
</html>
`))

type emailView struct {
	MeetingName  string
	Summary      []string
	ActionItems  []string
	KeyQuestions []string
	RecordURL    string
}

// Subject returns the email subject for a meeting
func Subject(meetingName string) string {
	return fmt.Sprintf("Meeting Summary: %s", meetingName)
}

// RenderHTML renders the HTML body. Every non-blank line of the list fields
// becomes one list item.
func RenderHTML(n entities.Notification) (string, error) {
	view := emailView{
		MeetingName:  n.MeetingName,
		Summary:      nonBlankLines(n.Summary),
		ActionItems:  listItems(n.ActionItems),
		KeyQuestions: listItems(n.KeyQuestions),
		RecordURL:    n.RecordURL,
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render email: %w", err)
	}
	return buf.String(), nil
}

// RenderText renders the plain-text alternative body
func RenderText(n entities.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meeting Summary: %s\n\n", n.MeetingName)
	fmt.Fprintf(&b, "Summary:\n%s\n\n", n.Summary)
	fmt.Fprintf(&b, "Action Items:\n%s\n\n", n.ActionItems)
	fmt.Fprintf(&b, "Key Questions:\n%s\n", n.KeyQuestions)
	if n.RecordURL != "" {
		fmt.Fprintf(&b, "\nView the full record: %s\n", n.RecordURL)
	}
	return b.String()
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func listItems(text string) []string {
	lines := nonBlankLines(text)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(line, bullet))
	}
	return lines
}
