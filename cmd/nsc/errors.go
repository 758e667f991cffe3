package main

import (
	"errors"

	"github.com/neuroscanhq/neuroscan/internal/classifier"
)

// HintedError wraps an error with a user-facing recovery hint.
type HintedError struct {
	Err  error
	Hint string
}

func (h *HintedError) Error() string { return h.Err.Error() }
func (h *HintedError) Unwrap() error { return h.Err }

// hintWrap attaches a recovery hint to classification-service errors.
func hintWrap(err error) error {
	if err == nil {
		return nil
	}
	var (
		te *classifier.TransportError
		re *classifier.RemoteError
	)
	switch {
	case errors.As(err, &te):
		return &HintedError{
			Err:  err,
			Hint: "Check that the classification server is running and reachable; set --server or $NSC_SERVER.",
		}
	case errors.As(err, &re):
		return &HintedError{
			Err:  err,
			Hint: "The server rejected the request. Run 'nsc models list' to check the service state.",
		}
	}
	return err
}
