package reconcile

import (
	stdErrors "errors"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ReadProperty returns the first text segment of a record property. It never
// fails: a missing or empty property logs a warning and reads as "".
func ReadProperty(logger *zap.Logger, props entities.Properties, fieldType entities.PropertyType, name string) string {
	text, err := props.FirstText(name, fieldType)
	if err == nil {
		return text
	}
	if logger == nil {
		return ""
	}

	switch {
	case stdErrors.Is(err, entities.ErrPropertyMissing):
		logger.Warn("⚠️ Record property missing",
			zap.String("property", name),
			zap.String("type", string(fieldType)),
		)
	case stdErrors.Is(err, entities.ErrPropertyEmpty):
		logger.Warn("⚠️ Record property is empty",
			zap.String("property", name),
			zap.String("type", string(fieldType)),
		)
	default:
		logger.Warn("⚠️ Record property unreadable",
			zap.String("property", name),
			zap.String("type", string(fieldType)),
			zap.Error(err),
		)
	}
	return ""
}

// recordFields is the flat text read back from a record
type recordFields struct {
	MeetingName  string
	Summary      string
	ActionItems  string
	KeyQuestions string
}

func readRecord(logger *zap.Logger, record entities.MeetingRecord) recordFields {
	log := logger
	if log != nil {
		log = log.With(zap.String("record_id", record.ID))
	}
	return recordFields{
		MeetingName:  ReadProperty(log, record.Properties, entities.PropertyTypeTitle, entities.PropMeetingName),
		Summary:      ReadProperty(log, record.Properties, entities.PropertyTypeRichText, entities.PropSummary),
		ActionItems:  ReadProperty(log, record.Properties, entities.PropertyTypeRichText, entities.PropActionItems),
		KeyQuestions: ReadProperty(log, record.Properties, entities.PropertyTypeRichText, entities.PropKeyQuestions),
	}
}
