package ai

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// AssemblyAIClient transcribes hosted audio with the AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates a transcriber. It returns nil when no API key is configured.
func NewAssemblyAIClient(cfg config.TranscriptionConfig) *AssemblyAIClient {
	if cfg.APIKey == "" {
		return nil
	}
	return &AssemblyAIClient{client: aai.NewClient(cfg.APIKey)}
}

// Transcribe submits audioURL and waits for the finished transcript
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	return transcriptText(transcript.Status, transcript.Text, transcript.Error)
}

func transcriptText(status aai.TranscriptStatus, text, errMsg *string) (string, error) {
	switch status {
	case aai.TranscriptStatusCompleted:
		if text == nil || *text == "" {
			return "", fmt.Errorf("assemblyai returned an empty transcript")
		}
		return *text, nil
	case aai.TranscriptStatusError:
		if errMsg != nil {
			return "", fmt.Errorf("assemblyai error: %s", *errMsg)
		}
		return "", fmt.Errorf("assemblyai error")
	default:
		return "", fmt.Errorf("assemblyai transcript not finished: %s", status)
	}
}
