package dto

import "github.com/johnquangdev/meeting-notes/internal/usecase/reconcile"

// SummarizeRequest is the body of POST /summarize
type SummarizeRequest struct {
	Transcript  string `json:"transcript" validate:"notblank"`
	MeetingName string `json:"meetingName,omitempty" validate:"omitempty,max=2000"`
}

// SummarizeResponse is returned once the record has been created.
// EmailSent may be false; the sweep retries delivery later.
type SummarizeResponse struct {
	Message      string `json:"message"`
	NotionURL    string `json:"notion_url"`
	EmailSent    bool   `json:"email_sent"`
	EmailMessage string `json:"email_message"`
}

// TranscribeRequest is the body of POST /transcribe
type TranscribeRequest struct {
	AudioURL string `json:"audioUrl" validate:"required,url"`
}

// TranscribeResponse carries the transcript text
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// SweepResponse summarises one reconciliation sweep
type SweepResponse struct {
	Message   string                   `json:"message"`
	Processed int                      `json:"processed"`
	Skipped   int                      `json:"skipped"`
	Failed    int                      `json:"failed"`
	HasMore   bool                     `json:"has_more"`
	Records   []reconcile.RecordStatus `json:"records,omitempty"`
}

// NewSweepResponse converts a sweep result
func NewSweepResponse(r *reconcile.SweepResult) SweepResponse {
	return SweepResponse{
		Message:   r.Message(),
		Processed: r.Processed,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
		HasMore:   r.HasMore,
		Records:   r.Records,
	}
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Store       string `json:"store"`
}

// ArchiveListResponse lists archived pipeline artifacts
type ArchiveListResponse struct {
	Files  []string `json:"files"`
	Count  int      `json:"count"`
	Prefix string   `json:"prefix"`
}

// ArchiveURLResponse carries a presigned download URL
type ArchiveURLResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in"`
}
