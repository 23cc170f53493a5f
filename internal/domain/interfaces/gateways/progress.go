package gateways

// ProgressReporter creates trackers for byte transfers
type ProgressReporter interface {
	// Track starts reporting for name; total is -1 when the size is unknown
	Track(name string, total int64) ProgressTracker
}

// ProgressTracker receives transferred bytes through Write
type ProgressTracker interface {
	Write(p []byte) (int, error)
	Finish() error
}

// NoOpProgress discards progress (useful for tests and --no-progress)
type NoOpProgress struct{}

// Track returns a tracker that ignores all updates
func (NoOpProgress) Track(_ string, _ int64) ProgressTracker {
	return noOpTracker{}
}

type noOpTracker struct{}

func (noOpTracker) Write(p []byte) (int, error) { return len(p), nil }

func (noOpTracker) Finish() error { return nil }
