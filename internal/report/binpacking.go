package report

import (
	"math"
	"sort"

	"kube-binpack/internal/quantity"
)

// NodeUtilization is one per-node row of the bin-packing report. Memory is
// rendered as a human-readable string for the JSON report; the raw byte
// values ride along unserialized for consumers that need numbers, such as
// the metrics exporter.
type NodeUtilization struct {
	Node              string  `json:"node"`
	Pods              int     `json:"pods"`
	CPURequested      float64 `json:"cpu_requested"`
	CPUAllocatable    float64 `json:"cpu_allocatable"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryRequested   string  `json:"memory_requested"`
	MemoryAllocatable string  `json:"memory_allocatable"`
	MemoryPercent     float64 `json:"memory_percent"`

	MemoryRequestedBytes   float64 `json:"-"`
	MemoryAllocatableBytes float64 `json:"-"`
}

// BinpackingReport lists requested versus allocatable resources per node.
type BinpackingReport struct {
	Nodes []NodeUtilization `json:"nodes"`
}

// BuildBinpacking joins capacity and aggregated requests into per-node rows,
// sorted ascending by node name. Every node in the index gets a row, pods or
// not; node totals for names absent from the index are ignored. A zero
// capacity yields a zero percent so rows stay renderable. nodeFilter, when
// non-empty, restricts the emitted rows after aggregation.
func BuildBinpacking(index CapacityIndex, agg Aggregation, nodeFilter string) BinpackingReport {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]NodeUtilization, 0, len(names))
	for _, name := range names {
		if nodeFilter != "" && name != nodeFilter {
			continue
		}
		capacity := index[name]
		totals := agg.ByNode[name]
		rows = append(rows, NodeUtilization{
			Node:              name,
			Pods:              totals.Pods,
			CPURequested:      round(totals.Requests.CPUCores, 3),
			CPUAllocatable:    round(capacity.CPUCores, 3),
			CPUPercent:        round(percent(totals.Requests.CPUCores, capacity.CPUCores), 1),
			MemoryRequested:   quantity.FormatMemory(totals.Requests.MemoryBytes),
			MemoryAllocatable: quantity.FormatMemory(capacity.MemoryBytes),
			MemoryPercent:     round(percent(totals.Requests.MemoryBytes, capacity.MemoryBytes), 1),

			MemoryRequestedBytes:   totals.Requests.MemoryBytes,
			MemoryAllocatableBytes: capacity.MemoryBytes,
		})
	}
	return BinpackingReport{Nodes: rows}
}

func percent(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return used / capacity * 100
}

// round is presentational only; aggregation always runs on unrounded values.
func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
