package report

import "kube-binpack/internal/snapshot"

// NodePod is one pod entry of the pods-on-node report.
type NodePod struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Restarts  int    `json:"restarts"`
}

// NodePodsReport lists every pod scheduled on one node.
type NodePodsReport struct {
	Node  string    `json:"node"`
	Count int       `json:"count"`
	Pods  []NodePod `json:"pods"`
}

// BuildNodePods lists the pods placed on the named node regardless of phase,
// with restart counts summed across their containers.
func BuildNodePods(node string, pods []snapshot.Pod) NodePodsReport {
	out := NodePodsReport{Node: node, Pods: []NodePod{}}
	for _, pod := range pods {
		if pod.Spec.NodeName != node {
			continue
		}
		restarts := 0
		for _, cs := range pod.Status.ContainerStatuses {
			restarts += cs.RestartCount
		}
		out.Pods = append(out.Pods, NodePod{
			Name:      pod.Metadata.Name,
			Namespace: pod.Metadata.Namespace,
			Status:    pod.Status.Phase,
			Restarts:  restarts,
		})
	}
	out.Count = len(out.Pods)
	return out
}
