package ai

import (
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

func TestNewAssemblyAIClient_RequiresKey(t *testing.T) {
	assert.Nil(t, NewAssemblyAIClient(config.TranscriptionConfig{}))
	assert.NotNil(t, NewAssemblyAIClient(config.TranscriptionConfig{APIKey: "test-key"}))
}

func TestTranscriptText(t *testing.T) {
	text := "Alice: let's ship by Friday."
	out, err := transcriptText(aai.TranscriptStatusCompleted, &text, nil)
	require.NoError(t, err)
	assert.Equal(t, text, out)

	empty := ""
	_, err = transcriptText(aai.TranscriptStatusCompleted, &empty, nil)
	assert.Error(t, err)

	msg := "audio file could not be decoded"
	_, err = transcriptText(aai.TranscriptStatusError, nil, &msg)
	assert.EqualError(t, err, "assemblyai error: audio file could not be decoded")

	_, err = transcriptText(aai.TranscriptStatusProcessing, nil, nil)
	assert.Error(t, err)
}
