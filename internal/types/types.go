package types

// TranscriptSegment is one time-aligned piece of transcribed speech.
// Segments are globally ordered by start after the transcription merge,
// but chunk-boundary overlaps may exist and must be tolerated downstream.
type TranscriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the segment length in seconds.
func (s TranscriptSegment) Duration() float64 { return s.End - s.Start }

// Transcript is the merged output of the transcription engine.
type Transcript struct {
	Segments      []TranscriptSegment `json:"segments"`
	FullText      string              `json:"full_text"`
	TotalDuration float64             `json:"total_duration"`
}

// CandidateHighlight is a scored segment proposal from the ranking
// stage. Candidates are not guaranteed disjoint; score is in [0,1]
// after validation.
type CandidateHighlight struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Score  float64 `json:"score"`
	Label  string  `json:"label"`
	Reason string  `json:"reason"`
}

func (c CandidateHighlight) Duration() float64 { return c.End - c.Start }

// SelectedSegment is a finalized, disjoint, time-ordered range chosen
// for the highlight reel.
type SelectedSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
}

func (s SelectedSegment) Duration() float64 { return s.End - s.Start }

// TotalDuration sums selected segment durations.
func TotalDuration(segs []SelectedSegment) float64 {
	var total float64
	for _, s := range segs {
		total += s.Duration()
	}
	return total
}

// JobStatus is the fixed processing lifecycle reported to the external
// job-tracking collaborator.
type JobStatus string

const (
	StatusUploaded     JobStatus = "uploaded"
	StatusProcessing   JobStatus = "processing"
	StatusTranscribing JobStatus = "transcribing"
	StatusRanking      JobStatus = "ranking"
	StatusSelecting    JobStatus = "selecting"
	StatusRendering    JobStatus = "rendering"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
)

// Job is the descriptor handed to the pipeline. The core never mutates
// job identity; it only appends artifacts and status transitions.
type Job struct {
	ID            string
	TargetSeconds int
	SourceVideo   string
}

// Result is the manifest persisted as result.json when a job completes.
type Result struct {
	JobID          string            `json:"job_id"`
	Status         JobStatus         `json:"status"`
	CreatedAt      string            `json:"created_at"`
	TargetSeconds  int               `json:"target_seconds"`
	ActualDuration float64           `json:"actual_duration"`
	SegmentsCount  int               `json:"segments_count"`
	Files          map[string]string `json:"files"`
	Segments       []SelectedSegment `json:"segments"`
	Stats          ResultStats       `json:"processing_stats"`
}

// ResultStats carries selection and timing statistics for a run.
type ResultStats struct {
	ProcessingSeconds float64 `json:"processing_seconds"`
	CandidateCount    int     `json:"candidate_count"`
	CompressionRatio  float64 `json:"compression_ratio"`
	AvgSegmentLength  float64 `json:"avg_segment_length"`
}
