package report

import (
	"testing"

	"kube-binpack/internal/snapshot"
)

func TestBuildRequests(t *testing.T) {
	pods := []snapshot.Pod{
		{
			Metadata: snapshot.ObjectMeta{Name: "web", Namespace: "default"},
			Spec: snapshot.PodSpec{
				NodeName: "node-a",
				Containers: []snapshot.Container{{
					Name: "web",
					Resources: snapshot.ContainerResources{
						Requests: snapshot.ResourceStrings{CPU: "500m", Memory: "512Mi"},
						Limits:   snapshot.ResourceStrings{CPU: "1", Memory: "1Gi"},
					},
				}},
			},
			Status: snapshot.PodStatus{Phase: "Running"},
		},
		testPod("queued", "", "Pending", requesting("250m", "256Mi")),
	}

	agg, err := Aggregate(pods, NewPhaseFilter("Running", "Pending"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	got := BuildRequests(agg)

	if got.Totals.Requests.CPU != 0.75 || got.Totals.Requests.MemoryMi != 768 {
		t.Fatalf("unexpected request totals: %+v", got.Totals.Requests)
	}
	if got.Totals.Limits.CPU != 1 || got.Totals.Limits.MemoryMi != 1024 {
		t.Fatalf("unexpected limit totals: %+v", got.Totals.Limits)
	}

	if len(got.Pods) != 2 {
		t.Fatalf("expected 2 pods, got %d", len(got.Pods))
	}
	// Snapshot order is preserved.
	if got.Pods[0].Name != "web" || got.Pods[1].Name != "queued" {
		t.Fatalf("pods out of order: %+v", got.Pods)
	}
	if got.Pods[0].Requests.MemoryMi != 512 || got.Pods[0].Limits.MemoryMi != 1024 {
		t.Fatalf("unexpected web pod entry: %+v", got.Pods[0])
	}
	// The pending pod has no limits; zeros, not an error.
	if got.Pods[1].Limits.CPU != 0 || got.Pods[1].Limits.MemoryMi != 0 {
		t.Fatalf("unexpected queued pod limits: %+v", got.Pods[1])
	}
}

func TestBuildRequestsRounding(t *testing.T) {
	agg, err := Aggregate([]snapshot.Pod{
		testPod("p1", "n", "Running", requesting("333m", "100Ki")),
	}, NewPhaseFilter("Running"))
	if err != nil {
		t.Fatalf("Aggregate error = %v", err)
	}
	got := BuildRequests(agg)
	if got.Totals.Requests.CPU != 0.333 {
		t.Fatalf("cpu rounding: got %v", got.Totals.Requests.CPU)
	}
	// 100Ki is 0.09765625 Mi, rounded to one decimal.
	if got.Totals.Requests.MemoryMi != 0.1 {
		t.Fatalf("memory_mi rounding: got %v", got.Totals.Requests.MemoryMi)
	}
}
