// Package exporter serves the latest reports over HTTP and publishes
// per-node utilization gauges to Prometheus.
package exporter

import (
	"sync"
	"time"

	"kube-binpack/internal/report"
)

// ReportSet bundles the reports produced from one snapshot.
type ReportSet struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Binpacking  report.BinpackingReport `json:"binpacking"`
	Requests    report.RequestsReport   `json:"requests"`
	Pending     report.PendingReport    `json:"pending"`
}

// Store keeps the last generated report set in memory.
type Store struct {
	mu    sync.RWMutex
	set   ReportSet
	ready bool
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// Update swaps the report set atomically.
func (s *Store) Update(set ReportSet) {
	s.mu.Lock()
	s.set = set
	s.ready = true
	s.mu.Unlock()
}

// Latest returns the most recent report set, if any.
func (s *Store) Latest() (ReportSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return ReportSet{}, false
	}
	return s.set, true
}
