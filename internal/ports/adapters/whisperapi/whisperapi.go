// Package whisperapi transcribes audio through the hosted OpenAI
// Whisper endpoint as an alternative to a local whisper.cpp install.
package whisperapi

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

type Adapter struct {
	client *openai.Client
}

func New(client *openai.Client) *Adapter {
	return &Adapter{client: client}
}

// Load probes the API once so an invalid key fails the run before any
// audio is uploaded.
func (a *Adapter) Load(ctx context.Context) error {
	if a.client == nil {
		return &errs.ServiceError{Service: "whisper api", Err: errors.New("no API client configured")}
	}
	if _, err := a.client.ListModels(ctx); err != nil {
		return &errs.ServiceError{Service: "whisper api", Err: err}
	}
	return nil
}

// TranscribeChunk uploads one bounded WAV file and returns chunk-local
// segments from the verbose JSON response.
func (a *Adapter) TranscribeChunk(ctx context.Context, wavPath string) ([]types.TranscriptSegment, error) {
	resp, err := a.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: wavPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, &errs.ServiceError{Service: "whisper api", Err: err}
	}

	segs := make([]types.TranscriptSegment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" || s.End <= s.Start {
			continue
		}
		segs = append(segs, types.TranscriptSegment{Start: s.Start, End: s.End, Text: text})
	}
	return segs, nil
}
