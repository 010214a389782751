package driven

import "context"

// DocumentWatcher reports when a file is rewritten on disk.
type DocumentWatcher interface {
	// Watch emits on the returned channel each time path is written or
	// replaced. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}
