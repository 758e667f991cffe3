// Package classifier implements the client for the remote MRI
// classification service.
//
// The service predicts one of four tumor classes per image and returns
// the full probability vector in label order. Responses are validated at
// the boundary before a ClassificationResult is constructed; malformed
// payloads are rejected with a ValidationError rather than trusted.
package classifier

import (
	"fmt"
	"math"
)

// Class is one of the four fixed categories the service predicts.
type Class string

// The label set, in wire order. Probability vectors index this order.
const (
	ClassGlioma     Class = "glioma"
	ClassMeningioma Class = "meningioma"
	ClassNoTumor    Class = "notumor"
	ClassPituitary  Class = "pituitary"
)

// Classes returns the fixed label set in wire order.
func Classes() []Class {
	return []Class{ClassGlioma, ClassMeningioma, ClassNoTumor, ClassPituitary}
}

// NumClasses is the length of every probability vector.
const NumClasses = 4

// Index returns the position of c in the label set, or -1 if c is not a
// known class.
func Index(c Class) int {
	for i, k := range Classes() {
		if k == c {
			return i
		}
	}
	return -1
}

// DisplayName returns the human-facing name for a class.
func (c Class) DisplayName() string {
	switch c {
	case ClassGlioma:
		return "Glioma"
	case ClassMeningioma:
		return "Meningioma"
	case ClassNoTumor:
		return "No Tumor"
	case ClassPituitary:
		return "Pituitary"
	}
	return string(c)
}

// Resolutions is the enumerated set of square input sizes the service
// accepts.
var Resolutions = []int{128, 224, 256, 512}

// DefaultResolution is used when the caller does not choose one.
const DefaultResolution = 224

// ValidResolution reports whether n is in the enumerated resolution set.
func ValidResolution(n int) bool {
	for _, r := range Resolutions {
		if r == n {
			return true
		}
	}
	return false
}

// Config carries the per-request preprocessing options.
type Config struct {
	// Resolution is the square input size, one of Resolutions.
	Resolution int

	// Grayscale asks the service to collapse the image to one channel
	// before inference.
	Grayscale bool
}

// ClassificationResult is the validated outcome of classifying one image.
// It is ephemeral; history records are built from it but it is never
// persisted directly.
type ClassificationResult struct {
	Label         Class
	Probabilities [NumClasses]float64
}

// MaxProbability returns the largest entry of the probability vector.
// When several classes tie, the numeric maximum is returned regardless of
// which class attains it.
func (r ClassificationResult) MaxProbability() float64 {
	maxP := r.Probabilities[0]
	for _, p := range r.Probabilities[1:] {
		if p > maxP {
			maxP = p
		}
	}
	return maxP
}

// newResult validates a raw wire response and constructs a
// ClassificationResult. The label must be in the enumerated set and the
// vector must have exactly NumClasses finite entries in [0, 1]. The
// vector is not required to sum to 1.
func newResult(label string, probs []float64) (ClassificationResult, error) {
	c := Class(label)
	if Index(c) < 0 {
		return ClassificationResult{}, &ValidationError{
			Reason: fmt.Sprintf("unknown class %q", label),
		}
	}
	if len(probs) != NumClasses {
		return ClassificationResult{}, &ValidationError{
			Reason: fmt.Sprintf("probability vector has %d entries, want %d", len(probs), NumClasses),
		}
	}
	result := ClassificationResult{Label: c}
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
			return ClassificationResult{}, &ValidationError{
				Reason: fmt.Sprintf("probability[%d] = %v out of range", i, p),
			}
		}
		result.Probabilities[i] = p
	}
	return result, nil
}
