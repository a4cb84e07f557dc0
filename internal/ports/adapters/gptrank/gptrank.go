// Package gptrank ranks transcript segments through an OpenAI-style
// chat-completion endpoint. The response is untrusted: it passes
// through tolerant JSON extraction and the ranking package's schema
// validation before anything reaches the selector.
package gptrank

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Prajanya-g/videoSumarizer/internal/domain/ranking"
	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

const maxAttemptsPerChunk = 3

type Adapter struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func New(client *openai.Client, model string, log *slog.Logger) *Adapter {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Adapter{client: client, model: model, log: log}
}

// Rank partitions the transcript into token-bounded chunks and ranks
// each with up to three attempts. A chunk that exhausts its retries
// contributes zero candidates; an unreachable service fails the whole
// call so the caller can engage the offline fallback.
func (a *Adapter) Rank(ctx context.Context, segments []types.TranscriptSegment, targetSeconds int) ([]types.CandidateHighlight, error) {
	if err := a.probe(ctx); err != nil {
		return nil, err
	}

	chunks := ranking.ChunkSegments(segments)
	var all []types.CandidateHighlight
	for i, chunk := range chunks {
		a.log.Debug("ranking transcript chunk", "chunk", i+1, "chunks", len(chunks), "segments", len(chunk))
		cands := a.rankChunk(ctx, chunk, targetSeconds)
		all = append(all, cands...)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	a.log.Info("generative ranking completed", "candidates", len(all), "chunks", len(chunks))
	return all, nil
}

// probe fails fast when the service is entirely unreachable, before
// any chunk work is attempted.
func (a *Adapter) probe(ctx context.Context) error {
	_, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: 5,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "ping"},
		},
	})
	if err != nil {
		return &errs.ServiceError{Service: "ranking service", Err: err}
	}
	return nil
}

func (a *Adapter) rankChunk(ctx context.Context, chunk []types.TranscriptSegment, targetSeconds int) []types.CandidateHighlight {
	prompt, err := buildPrompt(chunk, targetSeconds)
	if err != nil {
		a.log.Warn("skipping chunk, prompt build failed", "error", err)
		return nil
	}

	for attempt := 1; attempt <= maxAttemptsPerChunk; attempt++ {
		raws, err := a.callOnce(ctx, prompt)
		if err == nil {
			return ranking.ValidateHighlights(raws, chunk)
		}
		a.log.Warn("ranking attempt failed", "attempt", attempt, "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	// Retries exhausted for this chunk only; the job continues with the
	// other chunks' candidates.
	return nil
}

func (a *Adapter) callOnce(ctx context.Context, prompt string) ([]ranking.Raw, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0.1,
		MaxTokens:   2000,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, &errs.ValidationError{Reason: "empty completion"}
	}
	return ExtractHighlights(resp.Choices[0].Message.Content)
}

func buildPrompt(segments []types.TranscriptSegment, targetSeconds int) (string, error) {
	sb, err := json.Marshal(segments)
	if err != nil {
		return "", fmt.Errorf("marshal segments: %w", err)
	}
	return fmt.Sprintf(`You are a video summarization expert. Select the best moments from this transcript for a %d-second highlight reel.

Requirements:
- Total duration close to %d seconds.
- Each highlight at least 2 seconds long, score in [0,1].
- Spread highlights across the timeline (beginning, middle, end); avoid clustering.
- Prefer key insights, conclusions, actionable advice, memorable quotes, data points.

Return STRICT JSON only, no markdown:
{"highlights":[{"start":45.2,"end":52.8,"score":0.9,"label":"Key insight","reason":"Main conclusion with supporting data"}]}

TRANSCRIPT SEGMENTS:
%s`, targetSeconds, targetSeconds, sb), nil
}
