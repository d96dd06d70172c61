package report

import (
	"sort"

	"kube-binpack/internal/snapshot"
)

// ContainerRestarts is one container whose restart count crossed the
// threshold.
type ContainerRestarts struct {
	Pod       string `json:"pod"`
	Namespace string `json:"namespace"`
	Container string `json:"container"`
	Restarts  int    `json:"restarts"`
	Ready     bool   `json:"ready"`
}

// RestartReport lists containers restarted more than the threshold.
type RestartReport struct {
	Threshold int                 `json:"threshold"`
	Pods      []ContainerRestarts `json:"pods"`
}

// BuildRestarts lists containers restarted more than threshold times, most
// restarted first. The sort is stable so equal counts keep snapshot order.
func BuildRestarts(pods []snapshot.Pod, threshold int) RestartReport {
	out := RestartReport{Threshold: threshold, Pods: []ContainerRestarts{}}
	for _, pod := range pods {
		for _, cs := range pod.Status.ContainerStatuses {
			if cs.RestartCount <= threshold {
				continue
			}
			out.Pods = append(out.Pods, ContainerRestarts{
				Pod:       pod.Metadata.Name,
				Namespace: pod.Metadata.Namespace,
				Container: cs.Name,
				Restarts:  cs.RestartCount,
				Ready:     cs.Ready,
			})
		}
	}
	sort.SliceStable(out.Pods, func(i, j int) bool {
		return out.Pods[i].Restarts > out.Pods[j].Restarts
	})
	return out
}
