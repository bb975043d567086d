// Package report renders analysis results to the configured destinations.
package report

import (
	"errors"
	"fmt"

	"github.com/elonfeng/channelpulse/pkg/analytics"
)

// Sink renders a finished report to a specific destination.
type Sink interface {
	Name() string
	Write(rep *analytics.Report) error
}

// Manager broadcasts a report to all registered sinks.
type Manager struct {
	sinks []Sink
}

// NewManager creates a new report manager.
func NewManager(sinks []Sink) *Manager {
	return &Manager{sinks: sinks}
}

// HasSinks returns true if at least one sink is configured.
func (m *Manager) HasSinks() bool {
	return len(m.sinks) > 0
}

// Broadcast writes the report to every registered sink. One failing sink
// does not stop the others; the errors are joined.
func (m *Manager) Broadcast(rep *analytics.Report) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Write(rep); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}
