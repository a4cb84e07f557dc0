package artifacts

import (
	"fmt"
	"strings"

	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// FormatSRT renders segments as a standard SubRip file with 1-indexed
// cues.
func FormatSRT(segments []types.TranscriptSegment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTime(seg.Start), srtTime(seg.End), seg.Text)
	}
	return b.String()
}

// srtTime formats seconds as HH:MM:SS,mmm.
func srtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	h := totalMillis / 3600000
	m := totalMillis % 3600000 / 60000
	s := totalMillis % 60000 / 1000
	ms := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
