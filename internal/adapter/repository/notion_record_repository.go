package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// richTextLimit is the maximum length of a single Notion rich-text segment
const richTextLimit = 2000

type notionPages interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

type notionDatabases interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// NotionRecordRepository stores records as pages of a Notion database
type NotionRecordRepository struct {
	pages      notionPages
	databases  notionDatabases
	databaseID notionapi.DatabaseID
}

// NewNotionRecordRepository creates a repository backed by the Notion API
func NewNotionRecordRepository(apiKey, databaseID string) *NotionRecordRepository {
	client := notionapi.NewClient(notionapi.Token(apiKey))
	return &NotionRecordRepository{
		pages:      client.Page,
		databases:  client.Database,
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// Backend names the store implementation
func (r *NotionRecordRepository) Backend() string { return "notion" }

// Create adds a page to the database
func (r *NotionRecordRepository) Create(ctx context.Context, props entities.Properties) (*entities.MeetingRecord, error) {
	page, err := r.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: r.databaseID,
		},
		Properties: toNotionProperties(props),
	})
	if err != nil {
		return nil, err
	}
	return fromNotionPage(page), nil
}

// QueryUnsent returns up to limit pages whose Sent checkbox is not ticked
func (r *NotionRecordRepository) QueryUnsent(ctx context.Context, limit int) (*entities.RecordPage, error) {
	resp, err := r.databases.Query(ctx, r.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: entities.PropSent,
			Checkbox: &notionapi.CheckboxFilterCondition{DoesNotEqual: true},
		},
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}

	page := &entities.RecordPage{
		Records: make([]entities.MeetingRecord, 0, len(resp.Results)),
		HasMore: resp.HasMore,
	}
	for i := range resp.Results {
		page.Records = append(page.Records, *fromNotionPage(&resp.Results[i]))
	}
	return page, nil
}

// MarkSent ticks the page's Sent checkbox
func (r *NotionRecordRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.pages.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			entities.PropSent: notionapi.CheckboxProperty{
				Type:     notionapi.PropertyTypeCheckbox,
				Checkbox: true,
			},
		},
	})
	return err
}

func toNotionProperties(props entities.Properties) notionapi.Properties {
	out := make(notionapi.Properties, len(props))
	for name, prop := range props {
		switch prop.Type {
		case entities.PropertyTypeTitle:
			out[name] = notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: toRichText(prop.Title),
			}
		case entities.PropertyTypeRichText:
			out[name] = notionapi.RichTextProperty{
				Type:     notionapi.PropertyTypeRichText,
				RichText: toRichText(prop.RichText),
			}
		case entities.PropertyTypeDate:
			if prop.Date == nil {
				continue
			}
			if _, err := time.Parse(entities.DateLayout, prop.Date.Start); err != nil {
				continue
			}
			out[name] = calendarDateProperty{Start: prop.Date.Start}
		case entities.PropertyTypeCheckbox:
			out[name] = notionapi.CheckboxProperty{
				Type:     notionapi.PropertyTypeCheckbox,
				Checkbox: prop.Checkbox,
			}
		}
	}
	return out
}

// calendarDateProperty writes a date-only value. notionapi.Date always
// serialises a full timestamp, which Notion stores as a datetime.
type calendarDateProperty struct {
	Start string
}

func (p calendarDateProperty) GetID() string { return "" }

func (p calendarDateProperty) GetType() notionapi.PropertyType { return notionapi.PropertyTypeDate }

func (p calendarDateProperty) MarshalJSON() ([]byte, error) {
	type dateObject struct {
		Start string `json:"start"`
	}
	return json.Marshal(struct {
		Type notionapi.PropertyType `json:"type"`
		Date dateObject             `json:"date"`
	}{
		Type: notionapi.PropertyTypeDate,
		Date: dateObject{Start: p.Start},
	})
}

// toRichText joins the segments and re-splits them into Notion-sized chunks
func toRichText(segments []entities.TextSegment) []notionapi.RichText {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Content)
	}

	chunks := chunkRunes(sb.String(), richTextLimit)
	out := make([]notionapi.RichText, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: c},
		})
	}
	return out
}

func chunkRunes(s string, size int) []string {
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}
	var chunks []string
	for len(runes) > 0 {
		n := size
		if len(runes) < n {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

func fromNotionPage(page *notionapi.Page) *entities.MeetingRecord {
	rec := &entities.MeetingRecord{
		ID:         page.ID.String(),
		URL:        page.URL,
		Properties: make(entities.Properties, len(page.Properties)),
		CreatedAt:  page.CreatedTime,
	}
	for name, prop := range page.Properties {
		if p, ok := fromNotionProperty(prop); ok {
			rec.Properties[name] = p
		}
	}
	return rec
}

// fromNotionProperty converts the property types the record schema uses.
// Decoded pages carry pointer types; request bodies built here carry values.
func fromNotionProperty(prop notionapi.Property) (entities.Property, bool) {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return entities.Property{Type: entities.PropertyTypeTitle, Title: fromRichText(p.Title)}, true
	case notionapi.TitleProperty:
		return entities.Property{Type: entities.PropertyTypeTitle, Title: fromRichText(p.Title)}, true
	case *notionapi.RichTextProperty:
		return entities.Property{Type: entities.PropertyTypeRichText, RichText: fromRichText(p.RichText)}, true
	case notionapi.RichTextProperty:
		return entities.Property{Type: entities.PropertyTypeRichText, RichText: fromRichText(p.RichText)}, true
	case *notionapi.DateProperty:
		return fromNotionDate(p.Date), true
	case notionapi.DateProperty:
		return fromNotionDate(p.Date), true
	case *notionapi.CheckboxProperty:
		return entities.CheckboxProperty(p.Checkbox), true
	case notionapi.CheckboxProperty:
		return entities.CheckboxProperty(p.Checkbox), true
	default:
		return entities.Property{}, false
	}
}

// fromRichText joins the chunks written by toRichText back into one segment
func fromRichText(rt []notionapi.RichText) []entities.TextSegment {
	if len(rt) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, r := range rt {
		if r.Text != nil {
			sb.WriteString(r.Text.Content)
		} else {
			sb.WriteString(r.PlainText)
		}
	}
	return []entities.TextSegment{{Content: sb.String()}}
}

func fromNotionDate(d *notionapi.DateObject) entities.Property {
	if d == nil || d.Start == nil {
		return entities.Property{Type: entities.PropertyTypeDate}
	}
	return entities.DateProperty(time.Time(*d.Start))
}
