package whispercpp

import (
	"testing"
)

func TestParseOutput(t *testing.T) {
	jb := []byte(`{
		"transcription": [
			{"offsets": {"from": 0, "to": 4500}, "text": " Hello there."},
			{"offsets": {"from": 4500, "to": 9000}, "text": "General remarks."}
		]
	}`)
	segs, err := parseOutput(jb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Start != 0 || segs[0].End != 4.5 {
		t.Fatalf("millisecond offsets not converted: %+v", segs[0])
	}
	if segs[0].Text != "Hello there." {
		t.Fatalf("text not trimmed: %q", segs[0].Text)
	}
}

func TestParseOutput_SkipsDegenerateEntries(t *testing.T) {
	jb := []byte(`{
		"transcription": [
			{"offsets": {"from": 0, "to": 2000}, "text": "   "},
			{"offsets": {"from": 5000, "to": 5000}, "text": "zero length"},
			{"offsets": {"from": 6000, "to": 8000}, "text": "kept"}
		]
	}`)
	segs, err := parseOutput(jb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "kept" {
		t.Fatalf("expected only the well-formed entry, got %v", segs)
	}
}

func TestParseOutput_Malformed(t *testing.T) {
	if _, err := parseOutput([]byte("not json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseOutput_EmptyTranscription(t *testing.T) {
	segs, err := parseOutput([]byte(`{"transcription": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 0 {
		t.Fatalf("expected no segments, got %v", segs)
	}
}
