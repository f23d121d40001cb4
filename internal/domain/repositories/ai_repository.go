package repositories

import "context"

// LanguageModel generates free text from a prompt
type LanguageModel interface {
	// Generate returns the raw model output for prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider and model, for logs
	Name() string
}

// Transcriber converts a hosted audio file into transcript text
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}
