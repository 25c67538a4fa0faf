package recipe

import "fmt"

// UpstreamError reports a failed call to the recipe service: either a transport
// failure (StatusCode 0) or a non-success HTTP status.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("recipe upstream %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("recipe upstream %s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
