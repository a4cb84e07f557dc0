//go:build integration

package itest

import (
	"context"
	"time"

	"github.com/Prajanya-g/videoSumarizer/internal/ports/adapters/ffmpeg"
)

// probeDurationSeconds asserts deliverable lengths through the same
// adapter the pipeline uses, so the test and the code under test agree
// on the probe invocation.
func probeDurationSeconds(path string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return ffmpeg.New("", "").ProbeDuration(ctx, path)
}
