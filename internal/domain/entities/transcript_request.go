package entities

import "strings"

// TranscriptRequest is one create-and-notify invocation
type TranscriptRequest struct {
	Transcript  string
	MeetingName string
}

// WithDefaultName fills a blank meeting name with fallback
func (r TranscriptRequest) WithDefaultName(fallback string) TranscriptRequest {
	if strings.TrimSpace(r.MeetingName) == "" {
		r.MeetingName = fallback
	}
	return r
}
