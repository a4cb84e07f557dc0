// Package status delivers stage-transition events to the external
// job-status collaborator through message passing, keeping side effects
// out of pipeline internals.
package status

import (
	"log/slog"
	"sync"

	"github.com/Prajanya-g/videoSumarizer/internal/ports"
	"github.com/Prajanya-g/videoSumarizer/internal/types"
)

// Event is one lifecycle transition for a job. Error carries the
// terminal failure text when Status is failed.
type Event struct {
	JobID  string
	Status types.JobStatus
	Error  string
}

// Reporter serializes events onto a buffered channel consumed by a
// single goroutine, so emitters deep inside the pipeline never block on
// the tracker and never call it concurrently.
type Reporter struct {
	events  chan Event
	tracker ports.Tracker
	log     *slog.Logger
	done    sync.WaitGroup
}

func NewReporter(tracker ports.Tracker, log *slog.Logger) *Reporter {
	r := &Reporter{
		events:  make(chan Event, 16),
		tracker: tracker,
		log:     log,
	}
	r.done.Add(1)
	go r.consume()
	return r
}

func (r *Reporter) consume() {
	defer r.done.Done()
	for ev := range r.events {
		if err := r.tracker.Update(ev.JobID, ev.Status, ev.Error); err != nil {
			// Status reporting is best-effort; a tracker outage must
			// not abort the job.
			r.log.Warn("status update failed", "job", ev.JobID, "status", ev.Status, "error", err)
		}
	}
}

// Emit queues one lifecycle transition.
func (r *Reporter) Emit(jobID string, st types.JobStatus, errMsg string) {
	r.events <- Event{JobID: jobID, Status: st, Error: errMsg}
}

// Close flushes pending events and stops the consumer.
func (r *Reporter) Close() {
	close(r.events)
	r.done.Wait()
}
