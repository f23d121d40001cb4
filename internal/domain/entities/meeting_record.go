package entities

import "time"

// Persisted-record schema. Field names are fixed by the document store.
const (
	PropMeetingName  = "Meeting Name"
	PropSummary      = "Summary"
	PropActionItems  = "Action Items"
	PropKeyQuestions = "Key Questions"
	PropDate         = "Date"
	PropSent         = "Sent"
)

// DateLayout is the calendar-date format stored in the Date property
const DateLayout = "2006-01-02"

// PropertyType is the store-side type of a record property
type PropertyType string

const (
	PropertyTypeTitle    PropertyType = "title"
	PropertyTypeRichText PropertyType = "rich_text"
	PropertyTypeDate     PropertyType = "date"
	PropertyTypeCheckbox PropertyType = "checkbox"
)

// TextSegment is one element of a title or rich_text value array
type TextSegment struct {
	Content string `json:"content" bson:"content"`
}

// DateValue holds a calendar date in DateLayout
type DateValue struct {
	Start string `json:"start" bson:"start"`
}

// Property is a single typed record property
type Property struct {
	Type     PropertyType  `json:"type" bson:"type"`
	Title    []TextSegment `json:"title,omitempty" bson:"title,omitempty"`
	RichText []TextSegment `json:"rich_text,omitempty" bson:"rich_text,omitempty"`
	Date     *DateValue    `json:"date,omitempty" bson:"date,omitempty"`
	Checkbox bool          `json:"checkbox" bson:"checkbox"`
}

// Segments returns the text array for the given type; nil for non-text types
func (p Property) Segments(t PropertyType) []TextSegment {
	switch t {
	case PropertyTypeTitle:
		return p.Title
	case PropertyTypeRichText:
		return p.RichText
	default:
		return nil
	}
}

// Properties is the property map of a record, keyed by schema field name
type Properties map[string]Property

// FirstText returns the first text segment of a property.
// It returns ErrPropertyMissing or ErrPropertyEmpty instead of indexing blindly.
func (p Properties) FirstText(name string, t PropertyType) (string, error) {
	prop, ok := p[name]
	if !ok {
		return "", ErrPropertyMissing
	}
	segments := prop.Segments(t)
	if len(segments) == 0 {
		return "", ErrPropertyEmpty
	}
	return segments[0].Content, nil
}

// TitleProperty builds a title property
func TitleProperty(content string) Property {
	return Property{Type: PropertyTypeTitle, Title: []TextSegment{{Content: content}}}
}

// RichTextProperty builds a rich_text property
func RichTextProperty(content string) Property {
	return Property{Type: PropertyTypeRichText, RichText: []TextSegment{{Content: content}}}
}

// DateProperty builds a date property holding the UTC calendar date of t
func DateProperty(t time.Time) Property {
	return Property{Type: PropertyTypeDate, Date: &DateValue{Start: t.UTC().Format(DateLayout)}}
}

// CheckboxProperty builds a checkbox property
func CheckboxProperty(checked bool) Property {
	return Property{Type: PropertyTypeCheckbox, Checkbox: checked}
}

// MeetingRecord is a persisted meeting summary. ID and URL are assigned by the store.
type MeetingRecord struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Sent reports the record's Sent flag
func (r *MeetingRecord) Sent() bool {
	if r == nil {
		return false
	}
	return r.Properties[PropSent].Checkbox
}

// NewRecordProperties builds the properties of a new, unsent record
func NewRecordProperties(meetingName, summary, actionItems, keyQuestions string, now time.Time) Properties {
	return Properties{
		PropMeetingName:  TitleProperty(meetingName),
		PropSummary:      RichTextProperty(summary),
		PropActionItems:  RichTextProperty(actionItems),
		PropKeyQuestions: RichTextProperty(keyQuestions),
		PropDate:         DateProperty(now),
		PropSent:         CheckboxProperty(false),
	}
}

// RecordPage is one page of records returned by a store query
type RecordPage struct {
	Records []MeetingRecord
	HasMore bool
}
