package report

import (
	"fmt"

	"kube-binpack/internal/quantity"
	"kube-binpack/internal/snapshot"
)

// Aggregate folds the pod collection into per-pod, per-node and grand
// totals. Pods whose phase is outside the filter are dropped entirely; pods
// without a node name count toward the grand totals but toward no node
// bucket. The fold is order-independent and side-effect-free.
func Aggregate(pods []snapshot.Pod, filter PhaseFilter) (Aggregation, error) {
	agg := Aggregation{
		Pods:   make([]PodResourceUsage, 0, len(pods)),
		ByNode: make(map[string]NodeTotals),
	}
	for _, pod := range pods {
		if !filter.Match(pod.Status.Phase) {
			continue
		}
		usage, err := sumContainers(pod)
		if err != nil {
			return Aggregation{}, err
		}
		agg.Pods = append(agg.Pods, usage)
		agg.Totals.Requests = agg.Totals.Requests.Add(usage.Requests)
		agg.Totals.Limits = agg.Totals.Limits.Add(usage.Limits)

		if usage.NodeName == "" {
			continue
		}
		totals := agg.ByNode[usage.NodeName]
		totals.Pods++
		totals.Requests = totals.Requests.Add(usage.Requests)
		agg.ByNode[usage.NodeName] = totals
	}
	return agg, nil
}

func sumContainers(pod snapshot.Pod) (PodResourceUsage, error) {
	usage := PodResourceUsage{
		Name:      pod.Metadata.Name,
		Namespace: pod.Metadata.Namespace,
		NodeName:  pod.Spec.NodeName,
	}
	for _, c := range pod.Spec.Containers {
		req, err := parseTotals(c.Resources.Requests)
		if err != nil {
			return PodResourceUsage{}, fmt.Errorf("pod %s/%s container %s requests: %w",
				pod.Metadata.Namespace, pod.Metadata.Name, c.Name, err)
		}
		lim, err := parseTotals(c.Resources.Limits)
		if err != nil {
			return PodResourceUsage{}, fmt.Errorf("pod %s/%s container %s limits: %w",
				pod.Metadata.Namespace, pod.Metadata.Name, c.Name, err)
		}
		usage.Requests = usage.Requests.Add(req)
		usage.Limits = usage.Limits.Add(lim)
	}
	return usage, nil
}

func parseTotals(rs snapshot.ResourceStrings) (ResourceTotals, error) {
	cpu, err := quantity.ParseCPU(rs.CPU)
	if err != nil {
		return ResourceTotals{}, err
	}
	mem, err := quantity.ParseMemoryBytes(rs.Memory)
	if err != nil {
		return ResourceTotals{}, err
	}
	return ResourceTotals{CPUCores: cpu, MemoryBytes: mem}, nil
}
