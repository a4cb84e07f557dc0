package gptrank

import (
	"testing"
)

func TestExtractHighlights_PlainJSON(t *testing.T) {
	content := `{"highlights": [{"start": 1.0, "end": 9.5, "score": 0.8, "label": "Intro", "reason": "opening"}]}`
	got, err := ExtractHighlights(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 highlight, got %d", len(got))
	}
	if got[0].Start != 1.0 || got[0].End != 9.5 || got[0].Label != "Intro" {
		t.Fatalf("wrong highlight: %+v", got[0])
	}
}

func TestExtractHighlights_CodeFences(t *testing.T) {
	content := "```json\n{\"highlights\": [{\"start\": 0, \"end\": 5}]}\n```"
	got, err := ExtractHighlights(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Score != 0.5 {
		t.Fatalf("expected defaulted score 0.5, got %v", got)
	}
}

func TestExtractHighlights_SurroundingProse(t *testing.T) {
	content := `Sure! Here are the key moments I found:

{"highlights": [{"start": 12, "end": 20, "score": 0.7}]}

Let me know if you need more.`
	got, err := ExtractHighlights(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Start != 12 {
		t.Fatalf("expected highlight from embedded object, got %v", got)
	}
}

func TestExtractHighlights_SkipsDecoyObjects(t *testing.T) {
	content := `{"note": "not it"} {"highlights": [{"start": 3, "end": 8, "score": 0.6}]}`
	got, err := ExtractHighlights(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Start != 3 {
		t.Fatalf("expected the highlights object, got %v", got)
	}
}

func TestExtractHighlights_MalformedTupleSkipped(t *testing.T) {
	content := `{"highlights": [
		{"start": "soon", "end": 4},
		{"start": 10, "end": 18, "score": 0.9}
	]}`
	got, err := ExtractHighlights(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Start != 10 {
		t.Fatalf("malformed tuple should be skipped, got %v", got)
	}
}

func TestExtractHighlights_EmptyList(t *testing.T) {
	got, err := ExtractHighlights(`{"highlights": []}`)
	if err != nil {
		t.Fatalf("empty list is a valid response: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no highlights, got %v", got)
	}
}

func TestExtractHighlights_Failures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"no json at all", "I could not find any highlights."},
		{"wrong shape", `{"segments": [1, 2, 3]}`},
		{"truncated object", `{"highlights": [{"start": 1,`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractHighlights(tt.content); err == nil {
				t.Fatalf("expected error for %q", tt.content)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	if got := stripFences("```json\n{}\n```"); got != "{}" {
		t.Fatalf("got %q", got)
	}
	if got := stripFences("{}"); got != "{}" {
		t.Fatalf("unfenced input should pass through, got %q", got)
	}
}
