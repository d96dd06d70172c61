package report

import (
	"errors"
	"testing"

	"kube-binpack/internal/quantity"
	"kube-binpack/internal/snapshot"
)

func testPod(name, node, phase string, containers ...snapshot.Container) snapshot.Pod {
	return snapshot.Pod{
		Metadata: snapshot.ObjectMeta{Name: name, Namespace: "default"},
		Spec:     snapshot.PodSpec{NodeName: node, Containers: containers},
		Status:   snapshot.PodStatus{Phase: phase},
	}
}

func requesting(cpu, memory string) snapshot.Container {
	return snapshot.Container{
		Name: "main",
		Resources: snapshot.ContainerResources{
			Requests: snapshot.ResourceStrings{CPU: cpu, Memory: memory},
		},
	}
}

func TestAggregatePhaseFilter(t *testing.T) {
	pods := []snapshot.Pod{
		testPod("running", "node-a", "Running", requesting("500m", "512Mi")),
		testPod("pending", "", "Pending", requesting("1", "1Gi")),
		testPod("done", "node-a", "Succeeded", requesting("2", "2Gi")),
	}

	agg, err := Aggregate(pods, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	if len(agg.Pods) != 1 || agg.Pods[0].Name != "running" {
		t.Fatalf("expected only the running pod, got %+v", agg.Pods)
	}

	agg, err = Aggregate(pods, NewPhaseFilter("Running", "Pending"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	if len(agg.Pods) != 2 {
		t.Fatalf("expected 2 retained pods, got %d", len(agg.Pods))
	}
	// The unscheduled pending pod counts toward grand totals but no node.
	if agg.Totals.Requests.CPUCores != 1.5 {
		t.Fatalf("expected total cpu 1.5, got %v", agg.Totals.Requests.CPUCores)
	}
	if node := agg.ByNode["node-a"]; node.Pods != 1 || node.Requests.CPUCores != 0.5 {
		t.Fatalf("unexpected node totals: %+v", node)
	}
	if len(agg.ByNode) != 1 {
		t.Fatalf("unscheduled pod must not create a node bucket: %+v", agg.ByNode)
	}
}

func TestAggregateMissingResources(t *testing.T) {
	pods := []snapshot.Pod{
		testPod("bare", "node-a", "Running", snapshot.Container{Name: "main"}),
	}
	agg, err := Aggregate(pods, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	if agg.Totals.Requests != (ResourceTotals{}) || agg.Totals.Limits != (ResourceTotals{}) {
		t.Fatalf("bare container must contribute zero, got %+v", agg.Totals)
	}
	if agg.ByNode["node-a"].Pods != 1 {
		t.Fatalf("bare pod still counts toward its node")
	}
}

func TestAggregateSumsAcrossContainers(t *testing.T) {
	pod := testPod("multi", "node-a", "Running",
		requesting("250m", "256Mi"),
		requesting("250m", "256Mi"),
	)
	agg, err := Aggregate([]snapshot.Pod{pod}, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	got := agg.Pods[0].Requests
	if got.CPUCores != 0.5 || got.MemoryBytes != 512*1048576 {
		t.Fatalf("unexpected pod totals: %+v", got)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	pods := []snapshot.Pod{
		testPod("a", "node-a", "Running", requesting("100m", "128Mi")),
		testPod("b", "node-a", "Running", requesting("200m", "256Mi")),
		testPod("c", "node-b", "Running", requesting("300m", "512Mi")),
	}
	reversed := []snapshot.Pod{pods[2], pods[1], pods[0]}

	fwd, err := Aggregate(pods, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	rev, err := Aggregate(reversed, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	if fwd.Totals != rev.Totals {
		t.Fatalf("grand totals order-dependent: %+v vs %+v", fwd.Totals, rev.Totals)
	}
	for name, totals := range fwd.ByNode {
		if rev.ByNode[name] != totals {
			t.Fatalf("node %s totals order-dependent: %+v vs %+v", name, totals, rev.ByNode[name])
		}
	}
}

func TestAggregateBadQuantityAborts(t *testing.T) {
	pods := []snapshot.Pod{
		testPod("good", "node-a", "Running", requesting("500m", "512Mi")),
		testPod("bad", "node-a", "Running", requesting("abc", "512Mi")),
	}
	_, err := Aggregate(pods, NewPhaseFilter("Running"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var parseErr *quantity.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type %T, want wrapped *quantity.ParseError", err)
	}
}
