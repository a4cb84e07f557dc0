package ranking

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Prajanya-g/videoSumarizer/internal/errs"
	"github.com/Prajanya-g/videoSumarizer/internal/ports"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// Service composes the generative ranker with the deterministic
// fallback. The fallback engages when the generative service is
// disabled or unreachable; with no fallback configured, total service
// unavailability is fatal for the job.
type Service struct {
	Primary  ports.Ranker // nil when the generative service is disabled
	Fallback ports.Ranker // nil when the offline fallback is disabled
	Log      *slog.Logger
}

func (s *Service) Rank(ctx context.Context, segments []types.TranscriptSegment, targetSeconds int) ([]types.CandidateHighlight, error) {
	if s.Primary == nil {
		if s.Fallback == nil {
			return nil, &errs.ServiceError{Service: "ranking", Err: errors.New("no ranker configured")}
		}
		s.Log.Info("generative ranker disabled, using offline ranker")
		return s.Fallback.Rank(ctx, segments, targetSeconds)
	}

	cands, err := s.Primary.Rank(ctx, segments, targetSeconds)
	if err == nil {
		return cands, nil
	}

	var svcErr *errs.ServiceError
	if errors.As(err, &svcErr) && s.Fallback != nil {
		s.Log.Warn("generative ranker unreachable, falling back to offline ranker", "error", err)
		return s.Fallback.Rank(ctx, segments, targetSeconds)
	}
	return nil, err
}
