package risk

import (
	"github.com/okian/telerisk/internal/domain/sectors"
	"github.com/okian/telerisk/pkg/logger"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithScorer replaces the scorer bound to id. Ids absent from the catalog
// are ignored.
func WithScorer(id string, sc sectors.Scorer) Option {
	return func(m *Manager) {
		if sc != nil && m.catalog.Has(id) {
			m.scorers[id] = sc
		}
	}
}

// WithLogger sets a custom logger for the manager.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}
