package ranking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

type stubRanker struct {
	cands []types.CandidateHighlight
	err   error
	calls int
}

func (s *stubRanker) Rank(context.Context, []types.TranscriptSegment, int) ([]types.CandidateHighlight, error) {
	s.calls++
	return s.cands, s.err
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_PrimarySucceeds(t *testing.T) {
	primary := &stubRanker{cands: []types.CandidateHighlight{{Start: 0, End: 5, Score: 0.9}}}
	fallback := &stubRanker{}
	svc := &Service{Primary: primary, Fallback: fallback, Log: discardLog()}

	got, err := svc.Rank(context.Background(), nil, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || fallback.calls != 0 {
		t.Fatalf("expected primary result only, got %v (fallback calls %d)", got, fallback.calls)
	}
}

func TestService_FallsBackOnServiceError(t *testing.T) {
	primary := &stubRanker{err: &errs.ServiceError{Service: "ranking", Err: errors.New("unreachable")}}
	fallback := &stubRanker{cands: []types.CandidateHighlight{{Start: 0, End: 5, Score: 0.4}}}
	svc := &Service{Primary: primary, Fallback: fallback, Log: discardLog()}

	got, err := svc.Rank(context.Background(), nil, 60)
	if err != nil {
		t.Fatalf("expected fallback to engage, got %v", err)
	}
	if len(got) != 1 || fallback.calls != 1 {
		t.Fatalf("fallback not used: %v (calls %d)", got, fallback.calls)
	}
}

func TestService_NonServiceErrorPropagates(t *testing.T) {
	primary := &stubRanker{err: errors.New("boom")}
	fallback := &stubRanker{}
	svc := &Service{Primary: primary, Fallback: fallback, Log: discardLog()}

	if _, err := svc.Rank(context.Background(), nil, 60); err == nil {
		t.Fatalf("expected error")
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback must not mask a non-availability error")
	}
}

func TestService_PrimaryDisabled(t *testing.T) {
	fallback := &stubRanker{cands: []types.CandidateHighlight{{Start: 0, End: 5, Score: 0.4}}}
	svc := &Service{Fallback: fallback, Log: discardLog()}

	got, err := svc.Rank(context.Background(), nil, 60)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected fallback result, got %v, %v", got, err)
	}
}

func TestService_NothingConfigured(t *testing.T) {
	svc := &Service{Log: discardLog()}
	_, err := svc.Rank(context.Background(), nil, 60)
	var svcErr *errs.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}
