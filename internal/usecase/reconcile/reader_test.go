package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/usecase/ai"
)

func TestReadProperty_ReturnsFirstSegment(t *testing.T) {
	props := entities.Properties{
		entities.PropSummary: {
			Type:     entities.PropertyTypeRichText,
			RichText: []entities.TextSegment{{Content: "first"}, {Content: "second"}},
		},
	}
	assert.Equal(t, "first", ReadProperty(zap.NewNop(), props, entities.PropertyTypeRichText, entities.PropSummary))
}

func TestReadProperty_ToleratesMalformedShapes(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	props := entities.Properties{
		entities.PropSummary:     {Type: entities.PropertyTypeRichText},
		entities.PropMeetingName: {Type: entities.PropertyTypeRichText, RichText: []entities.TextSegment{{Content: "x"}}},
	}

	assert.Equal(t, "", ReadProperty(logger, props, entities.PropertyTypeRichText, entities.PropKeyQuestions))
	assert.Equal(t, "", ReadProperty(logger, props, entities.PropertyTypeRichText, entities.PropSummary))
	// wrong type asked for reads as empty rather than panicking
	assert.Equal(t, "", ReadProperty(logger, props, entities.PropertyTypeTitle, entities.PropMeetingName))
	assert.Equal(t, "", ReadProperty(logger, nil, entities.PropertyTypeTitle, entities.PropMeetingName))
	assert.Equal(t, "", ReadProperty(nil, nil, entities.PropertyTypeTitle, entities.PropMeetingName))

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, "⚠️ Record property missing", entries[0].Message)
	assert.Equal(t, entities.PropKeyQuestions, entries[0].ContextMap()["property"])
	assert.Equal(t, "⚠️ Record property is empty", entries[1].Message)
}

func TestReadProperty_RoundTripsActionList(t *testing.T) {
	items := []entities.ActionItem{
		{Action: "Ship feature", Owner: "Alice"},
		{Action: "Book QA slot", Owner: "Bob"},
	}
	text := ai.FormatField(entities.ActionListValue(items...))
	props := entities.NewRecordProperties("Sync", "s", text, "", time.Now())

	read := ReadProperty(zap.NewNop(), props, entities.PropertyTypeRichText, entities.PropActionItems)
	assert.Equal(t, items, ai.ParseActionLines(read))
}

func TestReadProperty_RoundTripsStringList(t *testing.T) {
	questions := []string{"Who owns QA?", "Is Friday realistic?"}
	text := ai.FormatField(entities.StringListValue(questions...))
	props := entities.NewRecordProperties("Sync", "s", "", text, time.Now())

	read := ReadProperty(zap.NewNop(), props, entities.PropertyTypeRichText, entities.PropKeyQuestions)
	assert.Equal(t, questions, ai.ParseBulletLines(read))
}
