package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/usecase/notify"
	"github.com/johnquangdev/meeting-notes/pkg/deadline"
)

// NoRecordURL is reported when the store returns a record without a URL
const NoRecordURL = "No URL available"

// Service defines the create-and-notify pipeline
type Service interface {
	Summarize(ctx context.Context, req entities.TranscriptRequest) (*SummarizeResult, error)
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Timeouts bounds each external call made by the pipeline
type Timeouts struct {
	Model         time.Duration
	Store         time.Duration
	Transcription time.Duration
}

// SummarizeResult is the outcome of one create-and-notify run
type SummarizeResult struct {
	Record       *entities.MeetingRecord
	RecordURL    string
	Insights     *entities.ExtractedInsights
	EmailSent    bool
	EmailMessage string
}

// Deps are the collaborators of the pipeline. Archive and Transcriber are optional.
type Deps struct {
	Model       repositories.LanguageModel
	Store       repositories.RecordStore
	Sender      notify.Sender
	Archive     repositories.Archive
	Transcriber repositories.Transcriber
}

type aiService struct {
	deps        Deps
	parser      *Parser
	timeouts    Timeouts
	defaultName string
	now         func() time.Time
	logger      *zap.Logger
}

// NewAIService constructs the pipeline service
func NewAIService(deps Deps, timeouts Timeouts, defaultMeetingName string, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &aiService{
		deps:        deps,
		parser:      NewParser(),
		timeouts:    timeouts,
		defaultName: defaultMeetingName,
		now:         time.Now,
		logger:      logger,
	}
}

// Summarize runs model call, normalize, persist, notify and mark-sent in order.
// A notification failure after the record is persisted is reported in the
// result, not as an error; the record stays unsent for the sweep.
func (s *aiService) Summarize(ctx context.Context, req entities.TranscriptRequest) (*SummarizeResult, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, apperrors.ErrInvalidArgument("No transcript provided")
	}
	req = req.WithDefaultName(s.defaultName)

	s.logger.Info("🤖 Generating meeting insights",
		zap.String("meeting_name", req.MeetingName),
		zap.String("model", s.deps.Model.Name()),
		zap.Int("transcript_chars", len(req.Transcript)),
	)

	start := time.Now()
	raw, err := deadline.Run(ctx, "model.generate", s.timeouts.Model, func(ctx context.Context) (string, error) {
		return s.deps.Model.Generate(ctx, BuildInsightsPrompt(req.Transcript))
	})
	if err != nil {
		s.logger.Error("❌ Model call failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		if deadline.IsTimeout(err) {
			return nil, apperrors.ErrUpstreamTimeout("model.generate", err)
		}
		return nil, apperrors.ErrAISummaryFailed(err)
	}

	insights := s.parser.Normalize(raw)
	if !insights.Parsed {
		s.logger.Warn("⚠️ Model output was not valid JSON, storing raw text for review",
			zap.String("meeting_name", req.MeetingName),
			zap.Int("response_chars", len(raw)),
		)
	}
	s.archive(ctx, req, raw)

	formatted := FormatInsights(insights)
	props := entities.NewRecordProperties(req.MeetingName, formatted.Summary, formatted.ActionItems, formatted.KeyQuestions, s.now())

	record, err := deadline.Run(ctx, "store.create", s.timeouts.Store, func(ctx context.Context) (*entities.MeetingRecord, error) {
		return s.deps.Store.Create(ctx, props)
	})
	if err != nil {
		s.logger.Error("❌ Failed to create meeting record",
			zap.String("backend", s.deps.Store.Backend()),
			zap.Error(err),
		)
		if deadline.IsTimeout(err) {
			return nil, apperrors.ErrUpstreamTimeout("store.create", err)
		}
		return nil, apperrors.ErrStorageFailed("create record", err)
	}

	recordURL := record.URL
	if recordURL == "" {
		recordURL = NoRecordURL
	}
	s.logger.Info("✅ Meeting record created",
		zap.String("record_id", record.ID),
		zap.String("record_url", recordURL),
	)

	result := &SummarizeResult{
		Record:    record,
		RecordURL: recordURL,
		Insights:  insights,
	}

	delivery := s.deps.Sender.Send(ctx, entities.Notification{
		RecordID:     record.ID,
		MeetingName:  req.MeetingName,
		Summary:      formatted.Summary,
		ActionItems:  formatted.ActionItems,
		KeyQuestions: formatted.KeyQuestions,
		RecordURL:    record.URL,
	})
	result.EmailSent = delivery.Sent
	result.EmailMessage = delivery.Message
	if !delivery.Sent {
		return result, nil
	}

	err = deadline.Do(ctx, "store.mark_sent", s.timeouts.Store, func(ctx context.Context) error {
		return s.deps.Store.MarkSent(ctx, record.ID)
	})
	if err != nil {
		// The sweep will find the record unsent and send it again.
		s.logger.Error("❌ Email sent but record not marked as sent",
			zap.String("record_id", record.ID),
			zap.Error(err),
		)
	}

	return result, nil
}

// Transcribe converts hosted audio to transcript text
func (s *aiService) Transcribe(ctx context.Context, audioURL string) (string, error) {
	if s.deps.Transcriber == nil {
		return "", apperrors.ErrInvalidArgument("Transcription is not configured")
	}
	if strings.TrimSpace(audioURL) == "" {
		return "", apperrors.ErrInvalidArgument("No audio URL provided")
	}

	text, err := deadline.Run(ctx, "transcription", s.timeouts.Transcription, func(ctx context.Context) (string, error) {
		return s.deps.Transcriber.Transcribe(ctx, strings.TrimSpace(audioURL))
	})
	if err != nil {
		s.logger.Error("❌ Transcription failed", zap.String("audio_url", audioURL), zap.Error(err))
		if deadline.IsTimeout(err) {
			return "", apperrors.ErrUpstreamTimeout("transcription", err)
		}
		return "", apperrors.ErrAITranscriptionFailed(err)
	}
	return text, nil
}

// archive stores the transcript and raw model output. Failures are logged only.
func (s *aiService) archive(ctx context.Context, req entities.TranscriptRequest, raw string) {
	if s.deps.Archive == nil {
		return
	}
	prefix := fmt.Sprintf("meetings/%s/%s", s.now().UTC().Format(entities.DateLayout), uuid.NewString())
	objects := map[string]string{
		prefix + "/transcript.txt":   req.Transcript,
		prefix + "/model_output.txt": raw,
	}
	for key, body := range objects {
		err := deadline.Do(ctx, "archive.put", s.timeouts.Store, func(ctx context.Context) error {
			return s.deps.Archive.Put(ctx, key, []byte(body), "text/plain; charset=utf-8")
		})
		if err != nil {
			s.logger.Warn("⚠️ Failed to archive pipeline artifact", zap.String("key", key), zap.Error(err))
		}
	}
}
