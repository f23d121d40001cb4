package repository

import (
	"fmt"
	"time"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// flatRecord is the column/field view of a record shared by the SQL and document backends
type flatRecord struct {
	MeetingName  string
	Summary      string
	ActionItems  string
	KeyQuestions string
	Date         time.Time
	Sent         bool
}

func flatten(props entities.Properties) (flatRecord, error) {
	name, err := props.FirstText(entities.PropMeetingName, entities.PropertyTypeTitle)
	if err != nil {
		return flatRecord{}, fmt.Errorf("%s: %w", entities.PropMeetingName, err)
	}

	rec := flatRecord{
		MeetingName:  name,
		Summary:      textOrEmpty(props, entities.PropSummary),
		ActionItems:  textOrEmpty(props, entities.PropActionItems),
		KeyQuestions: textOrEmpty(props, entities.PropKeyQuestions),
		Sent:         props[entities.PropSent].Checkbox,
		Date:         time.Now().UTC(),
	}
	if d := props[entities.PropDate].Date; d != nil {
		parsed, err := time.Parse(entities.DateLayout, d.Start)
		if err != nil {
			return flatRecord{}, fmt.Errorf("%s: %w", entities.PropDate, err)
		}
		rec.Date = parsed
	}
	return rec, nil
}

func textOrEmpty(props entities.Properties, name string) string {
	text, _ := props.FirstText(name, entities.PropertyTypeRichText)
	return text
}

func (f flatRecord) properties() entities.Properties {
	return entities.Properties{
		entities.PropMeetingName:  entities.TitleProperty(f.MeetingName),
		entities.PropSummary:      entities.RichTextProperty(f.Summary),
		entities.PropActionItems:  entities.RichTextProperty(f.ActionItems),
		entities.PropKeyQuestions: entities.RichTextProperty(f.KeyQuestions),
		entities.PropDate:         entities.DateProperty(f.Date),
		entities.PropSent:         entities.CheckboxProperty(f.Sent),
	}
}

func recordURL(prefix, id string) string {
	if prefix == "" {
		return ""
	}
	return prefix + id
}
