// Package bulk drives batch classification runs.
//
// A run walks an ordered batch of image refs, classifies each one against
// the remote service strictly sequentially (one in-flight request at a
// time), folds the outcomes into per-class tallies, and commits a single
// aggregate record to the bounded bulk history log.
// Item failures are absorbed: they count toward the failure total and the
// batch continues. Cancellation is cooperative, checked between items,
// and still commits the partial tallies.
package bulk

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/neuroscanhq/neuroscan/internal/classifier"
	"github.com/neuroscanhq/neuroscan/internal/history"
)

// MaxBatch is the largest batch a single run accepts.
const MaxBatch = 500

// perItemEstimate feeds the advisory pre-run time estimate. It is a
// fixed heuristic, not a measurement; nothing asserts any relation to
// actual elapsed time.
const perItemEstimate = 2 * time.Second

// Estimate returns the advisory duration displayed before a run starts.
func Estimate(n int) time.Duration {
	return time.Duration(n) * perItemEstimate
}

// State identifies where a Runner is in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCancelled
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelled:
		return "cancelled"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Classifier is the per-item remote call a run depends on.
type Classifier interface {
	Classify(ctx context.Context, image []byte, cfg classifier.Config) (classifier.ClassificationResult, error)
}

// History is the commit path for the finished aggregate.
type History interface {
	CommitBulk(rec history.BulkAggregateRecord) ([]history.BulkAggregateRecord, error)
}

// Progress reports one processed item to the OnProgress callback.
type Progress struct {
	Ref       string
	Processed int // items attempted so far, including this one
	Total     int
	Failures  int
	Err       error // nil when this item classified successfully
}

// Report is the outcome of one run.
type Report struct {
	Record    history.BulkAggregateRecord
	Log       []history.BulkAggregateRecord
	Processed int  // items attempted before completion or cancellation
	Cancelled bool // true when the run stopped early; Record covers partial work
}

// Runner orchestrates bulk runs. Zero in-progress state survives a run;
// the committed record is the only durable output. State is readable
// from other goroutines while a run is in flight.
type Runner struct {
	Classifier Classifier
	History    History

	// Open resolves an image ref to its bytes. A failed open is an item
	// failure, same as a failed classification.
	Open func(ref string) ([]byte, error)

	// OnProgress, when non-nil, is invoked after every processed item.
	OnProgress func(Progress)

	state atomic.Int32
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run classifies every ref in order and commits one aggregate record.
// Per-item failures (transport, remote, validation, unreadable file) are
// counted and skipped, never retried. Cancelling ctx between items stops
// the run; the tallies accumulated so far are still committed and the
// report is marked Cancelled. Run itself errors only on an oversized
// batch or a failed commit.
func (r *Runner) Run(ctx context.Context, refs []string, cfg classifier.Config, modelName string) (*Report, error) {
	if len(refs) > MaxBatch {
		return nil, fmt.Errorf("batch of %d images exceeds the %d-image limit", len(refs), MaxBatch)
	}

	r.state.Store(int32(StateRunning))

	var t tally
	processed := 0
	cancelled := false
	for _, ref := range refs {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		processed++

		itemErr := r.processItem(ctx, ref, cfg, &t)
		if r.OnProgress != nil {
			r.OnProgress(Progress{
				Ref:       ref,
				Processed: processed,
				Total:     len(refs),
				Failures:  t.failures,
				Err:       itemErr,
			})
		}
	}

	rec := t.record(cfg, modelName, time.Now())
	log, err := r.History.CommitBulk(rec)
	if err != nil {
		r.state.Store(int32(StateIdle))
		return nil, fmt.Errorf("committing bulk record: %w", err)
	}

	if cancelled {
		r.state.Store(int32(StateCancelled))
	} else {
		r.state.Store(int32(StateCompleted))
	}
	return &Report{
		Record:    rec,
		Log:       log,
		Processed: processed,
		Cancelled: cancelled,
	}, nil
}

func (r *Runner) processItem(ctx context.Context, ref string, cfg classifier.Config, t *tally) error {
	image, err := r.Open(ref)
	if err != nil {
		t.fail()
		return fmt.Errorf("reading %s: %w", ref, err)
	}
	result, err := r.Classifier.Classify(ctx, image, cfg)
	if err != nil {
		t.fail()
		return fmt.Errorf("classifying %s: %w", ref, err)
	}
	t.add(result)
	return nil
}

// tally accumulates the running per-class state of one batch.
type tally struct {
	counts   [classifier.NumClasses]int
	samples  [classifier.NumClasses][]float64
	failures int
}

// add folds one successful classification into the tally: the predicted
// class's count goes up by one and the maximum probability, as a
// percentage, joins that class's confidence samples. Ties record the
// numeric max regardless of which class attains it.
func (t *tally) add(result classifier.ClassificationResult) {
	i := classifier.Index(result.Label)
	t.counts[i]++
	t.samples[i] = append(t.samples[i], result.MaxProbability()*100)
}

func (t *tally) fail() {
	t.failures++
}

// record freezes the tally into an aggregate record.
func (t *tally) record(cfg classifier.Config, modelName string, at time.Time) history.BulkAggregateRecord {
	rec := history.BulkAggregateRecord{
		Counts:     t.counts,
		Failures:   t.failures,
		ModelName:  modelName,
		Resolution: cfg.Resolution,
		Grayscale:  cfg.Grayscale,
		CreatedAt:  at,
	}
	for i, samples := range t.samples {
		rec.MeanConfidence[i] = meanConfidence(samples)
	}
	return rec
}

// meanConfidence returns the arithmetic mean of samples rounded to 2
// decimal places, or exactly 0 when there are no samples.
func meanConfidence(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s
	}
	return math.Round(sum/float64(len(samples))*100) / 100
}
