package driven

import "context"

// ConnectivityMonitor tracks server reachability. It is advisory only: the
// coordinator never gates a push on it, using it to label skipped pushes
// and avoid redundant probes. A push may always be attempted and fail on
// its own.
type ConnectivityMonitor interface {
	// Online returns the last observed reachability.
	Online() bool

	// Events returns a channel delivering reachability transitions
	// (true = went online, false = went offline). The channel is closed
	// when the monitor stops.
	Events() <-chan bool

	// Start begins probing until ctx is cancelled.
	Start(ctx context.Context)
}
