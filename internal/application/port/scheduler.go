package port

import "time"

// Scheduler runs deferred work. Hosts use it to debounce layout
// normalization during continuous window resizes.
type Scheduler interface {
	// Debounce runs fn once d has elapsed without another Debounce for key.
	// A pending call under the same key is replaced.
	Debounce(key string, d time.Duration, fn func())

	// Cancel drops the pending call for key, if any.
	Cancel(key string)

	// Stop cancels every pending call. Later Debounce calls are ignored.
	Stop()
}
