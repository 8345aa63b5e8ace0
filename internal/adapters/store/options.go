package store

import "github.com/okian/swish/pkg/logger"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithNamespace scopes all collections under an application namespace.
func WithNamespace(namespace string) Option {
	return func(s *SQLiteStore) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithSnapshotBuffer sizes each subscriber's snapshot channel.
func WithSnapshotBuffer(size int) Option {
	return func(s *SQLiteStore) {
		if size > 0 {
			s.snapshotBuffer = size
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.logger = l
		}
	}
}
