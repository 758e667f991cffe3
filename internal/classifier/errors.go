package classifier

import "fmt"

// TransportError indicates the service could not be reached or did not
// return a parseable body: connection failures, timeouts, malformed JSON.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError indicates the service answered with a non-success status.
// Message carries the service's error field when present.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// ValidationError indicates a 2xx response whose payload does not match
// the classification contract (unknown label, wrong vector length,
// non-finite entries).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "invalid response: " + e.Reason }
