package history

import (
	"time"

	"github.com/neuroscanhq/neuroscan/internal/classifier"
)

// Persistence keys and per-log caps.
const (
	KeySingle = "predictionHistory"
	KeyBulk   = "bulkPredictionHistory"

	SingleCap = 10
	BulkCap   = 50
)

// SinglePredictionRecord is one classified image in the single-prediction
// log. Note is the only field that changes after creation; records leave
// the log only through cap eviction or a full reset.
type SinglePredictionRecord struct {
	Label          classifier.Class                    `json:"label"`
	Probabilities  [classifier.NumClasses]float64      `json:"probabilities"`
	ImageRef       string                              `json:"imageRef"`
	ModelName      string                              `json:"modelName"`
	PreprocessFunc string                              `json:"preprocessFunc,omitempty"`
	Note           string                              `json:"note"`
	CreatedAt      time.Time                           `json:"createdAt"`
}

// BulkAggregateRecord summarizes one bulk run. Counts and MeanConfidence
// are indexed in label order (classifier.Classes). MeanConfidence entries
// are percentages rounded to 2 decimals, 0 for classes with no samples.
// CreatedAt doubles as the record's identity for deletion. Immutable
// after commit.
type BulkAggregateRecord struct {
	Counts         [classifier.NumClasses]int     `json:"counts"`
	MeanConfidence [classifier.NumClasses]float64 `json:"meanConfidence"`
	Failures       int                            `json:"failures"`
	ModelName      string                         `json:"modelName"`
	Resolution     int                            `json:"resolution"`
	Grayscale      bool                           `json:"grayscale"`
	CreatedAt      time.Time                      `json:"createdAt"`
}

// Total returns the number of successfully classified items.
func (r BulkAggregateRecord) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// prependCapped inserts item at the head and truncates to limit.
func prependCapped[T any](log []T, item T, limit int) []T {
	out := make([]T, 0, len(log)+1)
	out = append(out, item)
	out = append(out, log...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
