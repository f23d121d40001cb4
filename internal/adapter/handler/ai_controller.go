package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	aiuse "github.com/johnquangdev/meeting-notes/internal/usecase/ai"
)

// SummaryCreatedMessage is returned when a record was created
const SummaryCreatedMessage = "Summary created successfully!"

// AIController handles the summarize and transcribe endpoints
type AIController struct {
	svc    aiuse.Service
	logger *zap.Logger
}

// NewAIController creates a new AI controller
func NewAIController(svc aiuse.Service, logger *zap.Logger) *AIController {
	return &AIController{svc: svc, logger: logger}
}

// Summarize turns a transcript into a stored record and emails it
// @Summary      Summarize a meeting transcript
// @Description  Extracts a summary, action items and open questions, stores them as a record and emails the recipient. A failed email is reported in the body; the sweep retries it.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SummarizeRequest   true  "Transcript and optional meeting name"
// @Success      200      {object}  dto.SummarizeResponse
// @Failure      400      {object}  common.ErrorResponse   "No transcript provided"
// @Failure      500      {object}  common.ErrorResponse
// @Failure      504      {object}  common.ErrorResponse   "Upstream call timed out"
// @Router       /summarize [post]
func (ac *AIController) Summarize(c echo.Context) error {
	var req dto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("No transcript provided"))
	}

	result, err := ac.svc.Summarize(c.Request().Context(), entities.TranscriptRequest{
		Transcript:  req.Transcript,
		MeetingName: req.MeetingName,
	})
	if err != nil {
		return HandleError(ac.logger, c, err)
	}

	return HandleSuccess(ac.logger, c, http.StatusOK, dto.SummarizeResponse{
		Message:      SummaryCreatedMessage,
		NotionURL:    result.RecordURL,
		EmailSent:    result.EmailSent,
		EmailMessage: result.EmailMessage,
	})
}

// Transcribe converts hosted audio into transcript text
// @Summary      Transcribe meeting audio
// @Description  Transcribes audio at a public URL. Feed the transcript to /summarize.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      dto.TranscribeRequest  true  "Audio URL"
// @Success      200      {object}  dto.TranscribeResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      500      {object}  common.ErrorResponse
// @Failure      504      {object}  common.ErrorResponse
// @Router       /transcribe [post]
func (ac *AIController) Transcribe(c echo.Context) error {
	var req dto.TranscribeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(ac.logger, c, errors.ErrInvalidArgument("A valid audioUrl is required"))
	}

	text, err := ac.svc.Transcribe(c.Request().Context(), req.AudioURL)
	if err != nil {
		return HandleError(ac.logger, c, err)
	}
	return HandleSuccess(ac.logger, c, http.StatusOK, dto.TranscribeResponse{Transcript: text})
}
