package report

import "kube-binpack/internal/snapshot"

// PendingReason explains why a pending pod has not started.
type PendingReason struct {
	Type    string `json:"type"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// PendingPod is one stuck pod with its collected reasons.
type PendingPod struct {
	Name      string          `json:"name"`
	Namespace string          `json:"namespace"`
	Reasons   []PendingReason `json:"reasons"`
}

// PendingReport lists pods stuck in the Pending phase.
type PendingReport struct {
	Count int          `json:"count"`
	Pods  []PendingPod `json:"pods"`
}

// BuildPending collects pods in the Pending phase together with the failed
// conditions and waiting container states that explain them.
func BuildPending(pods []snapshot.Pod) PendingReport {
	out := PendingReport{Pods: []PendingPod{}}
	for _, pod := range pods {
		if pod.Status.Phase != "Pending" {
			continue
		}
		entry := PendingPod{
			Name:      pod.Metadata.Name,
			Namespace: pod.Metadata.Namespace,
			Reasons:   []PendingReason{},
		}
		for _, cond := range pod.Status.Conditions {
			if cond.Status == "False" && cond.Reason != "" {
				entry.Reasons = append(entry.Reasons, PendingReason{
					Type:    cond.Type,
					Reason:  cond.Reason,
					Message: cond.Message,
				})
			}
		}
		for _, cs := range pod.Status.ContainerStatuses {
			if w := cs.State.Waiting; w != nil && w.Reason != "" {
				entry.Reasons = append(entry.Reasons, PendingReason{
					Type:    "container:" + cs.Name,
					Reason:  w.Reason,
					Message: w.Message,
				})
			}
		}
		out.Pods = append(out.Pods, entry)
	}
	out.Count = len(out.Pods)
	return out
}
