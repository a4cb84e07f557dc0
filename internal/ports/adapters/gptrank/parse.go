package gptrank

import (
	"encoding/json"
	"strings"

	"github.com/Prajanya-g/videoSumarizer/internal/domain/ranking"
	"github.com/Prajanya-g/videoSumarizer/internal/errs"
)

// ExtractHighlights locates the first well-formed JSON object carrying
// a "highlights" key inside a free-form model response. Code fences and
// surrounding prose are tolerated; anything else counts as a failed
// attempt.
func ExtractHighlights(content string) ([]ranking.Raw, error) {
	t := strings.TrimSpace(content)
	if t == "" {
		return nil, &errs.ValidationError{Reason: "empty response"}
	}
	t = stripFences(t)

	for idx := strings.Index(t, "{"); idx >= 0; {
		var obj struct {
			Highlights []map[string]any `json:"highlights"`
		}
		dec := json.NewDecoder(strings.NewReader(t[idx:]))
		if err := dec.Decode(&obj); err == nil && obj.Highlights != nil {
			return coerceAll(obj.Highlights), nil
		}
		next := strings.Index(t[idx+1:], "{")
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return nil, &errs.ValidationError{Reason: "no highlights object in response"}
}

func coerceAll(objs []map[string]any) []ranking.Raw {
	out := make([]ranking.Raw, 0, len(objs))
	for _, obj := range objs {
		raw, err := ranking.CoerceRaw(obj)
		if err != nil {
			// One malformed tuple never rejects the rest.
			continue
		}
		out = append(out, raw)
	}
	return out
}

func stripFences(t string) string {
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}
