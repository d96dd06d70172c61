// Package report implements the aggregation core: capacity indexing, request
// aggregation over a pod snapshot, and the structured reports built from
// them. Every builder is a pure function of its inputs; the package keeps no
// state between invocations, so independent snapshots can be reported on
// concurrently.
package report

// NodeCapacity is a node's allocatable capacity in canonical units.
type NodeCapacity struct {
	Name        string
	CPUCores    float64
	MemoryBytes float64
}

// CapacityIndex maps node name to allocatable capacity.
type CapacityIndex map[string]NodeCapacity

// ResourceTotals pairs CPU cores with memory bytes.
type ResourceTotals struct {
	CPUCores    float64
	MemoryBytes float64
}

// Add returns the element-wise sum.
func (t ResourceTotals) Add(o ResourceTotals) ResourceTotals {
	return ResourceTotals{
		CPUCores:    t.CPUCores + o.CPUCores,
		MemoryBytes: t.MemoryBytes + o.MemoryBytes,
	}
}

// PodResourceUsage sums one pod's container requests and limits.
type PodResourceUsage struct {
	Name      string
	Namespace string
	NodeName  string
	Requests  ResourceTotals
	Limits    ResourceTotals
}

// NodeTotals accumulates the requests of pods scheduled on one node.
type NodeTotals struct {
	Pods     int
	Requests ResourceTotals
}

// PodTotals are cluster-wide grand totals over all retained pods, scheduled
// or not.
type PodTotals struct {
	Requests ResourceTotals
	Limits   ResourceTotals
}

// Aggregation is the finished result of one aggregation pass.
type Aggregation struct {
	Pods   []PodResourceUsage
	ByNode map[string]NodeTotals
	Totals PodTotals
}

// PhaseFilter is the set of pod lifecycle phases included in an aggregation
// pass.
type PhaseFilter map[string]struct{}

// NewPhaseFilter builds a filter from the given phase names.
func NewPhaseFilter(phases ...string) PhaseFilter {
	f := make(PhaseFilter, len(phases))
	for _, p := range phases {
		f[p] = struct{}{}
	}
	return f
}

// Match reports whether the phase passes the filter.
func (f PhaseFilter) Match(phase string) bool {
	_, ok := f[phase]
	return ok
}
