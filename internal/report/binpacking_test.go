package report

import (
	"testing"

	"kube-binpack/internal/snapshot"
)

func clusterFixture() ([]snapshot.Node, []snapshot.Pod) {
	nodes := []snapshot.Node{
		testNode("node-b", "2", "4Gi"),
		testNode("node-a", "4", "8Gi"),
	}
	pods := []snapshot.Pod{
		testPod("web-1", "node-a", "Running", requesting("500m", "512Mi")),
		testPod("web-2", "node-a", "Running", requesting("500m", "512Mi")),
		testPod("db-1", "node-b", "Running", requesting("1", "1Gi")),
	}
	return nodes, pods
}

func TestBuildBinpacking(t *testing.T) {
	nodes, pods := clusterFixture()
	index, err := BuildCapacityIndex(nodes)
	if err != nil {
		t.Fatalf("BuildCapacityIndex error = %v", err)
	}
	agg, err := Aggregate(pods, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}

	got := BuildBinpacking(index, agg, "")
	if len(got.Nodes) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got.Nodes))
	}
	// Rows are sorted by name even though node-b was listed first.
	a, b := got.Nodes[0], got.Nodes[1]
	if a.Node != "node-a" || b.Node != "node-b" {
		t.Fatalf("rows not sorted: %q, %q", a.Node, b.Node)
	}

	if a.Pods != 2 || a.CPURequested != 1.0 || a.CPUPercent != 25.0 {
		t.Fatalf("unexpected node-a row: %+v", a)
	}
	if a.MemoryRequested != "1.0Gi" || a.MemoryPercent != 12.5 {
		t.Fatalf("unexpected node-a memory: %+v", a)
	}
	// Raw byte values are carried for the metrics exporter.
	if a.MemoryRequestedBytes != 1<<30 || a.MemoryAllocatableBytes != 8<<30 {
		t.Fatalf("unexpected node-a memory bytes: %+v", a)
	}
	if b.Pods != 1 || b.CPURequested != 1.0 || b.CPUPercent != 50.0 || b.MemoryPercent != 25.0 {
		t.Fatalf("unexpected node-b row: %+v", b)
	}
	if b.MemoryAllocatable != "4.0Gi" {
		t.Fatalf("unexpected node-b allocatable: %q", b.MemoryAllocatable)
	}
}

func TestBuildBinpackingNodeFilter(t *testing.T) {
	nodes, pods := clusterFixture()
	index, _ := BuildCapacityIndex(nodes)
	agg, _ := Aggregate(pods, NewPhaseFilter("Running"))

	got := BuildBinpacking(index, agg, "node-b")
	if len(got.Nodes) != 1 || got.Nodes[0].Node != "node-b" {
		t.Fatalf("expected only node-b, got %+v", got.Nodes)
	}
	// The filter applies after aggregation, so the row is unchanged.
	if got.Nodes[0].CPUPercent != 50.0 {
		t.Fatalf("filtered row differs from unfiltered: %+v", got.Nodes[0])
	}
}

func TestBuildBinpackingZeroCapacity(t *testing.T) {
	index, _ := BuildCapacityIndex([]snapshot.Node{testNode("empty", "", "")})
	agg, _ := Aggregate([]snapshot.Pod{
		testPod("p", "empty", "Running", requesting("1", "1Gi")),
	}, NewPhaseFilter("Running"))

	got := BuildBinpacking(index, agg, "")
	row := got.Nodes[0]
	if row.CPUPercent != 0 || row.MemoryPercent != 0 {
		t.Fatalf("zero capacity must yield zero percent, got %+v", row)
	}
	if row.Pods != 1 || row.CPURequested != 1 {
		t.Fatalf("requested values still reported: %+v", row)
	}
}

func TestBuildBinpackingUnknownNodeIgnored(t *testing.T) {
	index, _ := BuildCapacityIndex([]snapshot.Node{testNode("node-a", "4", "8Gi")})
	agg, _ := Aggregate([]snapshot.Pod{
		testPod("ghost", "node-gone", "Running", requesting("1", "1Gi")),
	}, NewPhaseFilter("Running"))

	got := BuildBinpacking(index, agg, "")
	if len(got.Nodes) != 1 {
		t.Fatalf("expected only indexed nodes, got %+v", got.Nodes)
	}
	if got.Nodes[0].Pods != 0 || got.Nodes[0].CPURequested != 0 {
		t.Fatalf("pod on unknown node leaked into node-a: %+v", got.Nodes[0])
	}
	// The pod still counted toward cluster totals.
	if agg.Totals.Requests.CPUCores != 1 {
		t.Fatalf("expected grand total cpu 1, got %v", agg.Totals.Requests.CPUCores)
	}
}

func TestBuildBinpackingEmptyNodeRow(t *testing.T) {
	index, _ := BuildCapacityIndex([]snapshot.Node{testNode("idle", "4", "8Gi")})
	got := BuildBinpacking(index, Aggregation{ByNode: map[string]NodeTotals{}}, "")
	if len(got.Nodes) != 1 {
		t.Fatalf("node without pods must still get a row")
	}
	row := got.Nodes[0]
	if row.Pods != 0 || row.MemoryRequested != "0" || row.CPUPercent != 0 {
		t.Fatalf("unexpected idle row: %+v", row)
	}
}
