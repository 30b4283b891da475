package driven

import "context"

// ChangeNotifier reports filesystem changes under a project.
type ChangeNotifier interface {
	// Changes streams changed paths until ctx is done or Close is called.
	Changes(ctx context.Context) (<-chan string, error)

	// Close releases the underlying watches.
	Close() error
}
