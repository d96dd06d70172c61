package kube

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kube-binpack/internal/snapshot"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Source lists cluster objects through the API and converts them into the
// snapshot document model. Resource quantities are re-rendered as strings so
// every value crosses the same parsing boundary regardless of source.
type Source struct {
	client kubernetes.Interface
	logger *slog.Logger
}

// NewSource constructs a Source around an existing clientset.
func NewSource(client kubernetes.Interface, logger *slog.Logger) *Source {
	return &Source{client: client, logger: logger}
}

// Snapshot lists nodes (when requested) and pods. Any failed list aborts the
// fetch.
func (s *Source) Snapshot(ctx context.Context, opts snapshot.Options) (snapshot.Snapshot, error) {
	snap := snapshot.Snapshot{Timestamp: time.Now().UTC()}

	if opts.IncludeNodes {
		nodeList, err := s.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		if err != nil {
			return snapshot.Snapshot{}, fmt.Errorf("list nodes: %w", err)
		}
		snap.Nodes = make([]snapshot.Node, 0, len(nodeList.Items))
		for _, node := range nodeList.Items {
			snap.Nodes = append(snap.Nodes, convertNode(node))
		}
	}

	namespace := opts.Namespace
	if opts.AllNamespaces {
		namespace = metav1.NamespaceAll
	}
	podList, err := s.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: opts.FieldSelector,
	})
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("list pods: %w", err)
	}
	snap.Pods = make([]snapshot.Pod, 0, len(podList.Items))
	for _, pod := range podList.Items {
		snap.Pods = append(snap.Pods, convertPod(pod))
	}

	s.logger.Debug("api snapshot",
		slog.Int("nodes", len(snap.Nodes)),
		slog.Int("pods", len(snap.Pods)))
	return snap, nil
}

func convertNode(node corev1.Node) snapshot.Node {
	return snapshot.Node{
		Metadata: snapshot.ObjectMeta{Name: node.Name},
		Status: snapshot.NodeStatus{
			Allocatable: resourceStrings(node.Status.Allocatable),
		},
	}
}

func convertPod(pod corev1.Pod) snapshot.Pod {
	containers := make([]snapshot.Container, 0, len(pod.Spec.Containers))
	for _, c := range pod.Spec.Containers {
		containers = append(containers, snapshot.Container{
			Name: c.Name,
			Resources: snapshot.ContainerResources{
				Requests: resourceStrings(c.Resources.Requests),
				Limits:   resourceStrings(c.Resources.Limits),
			},
		})
	}

	conditions := make([]snapshot.PodCondition, 0, len(pod.Status.Conditions))
	for _, cond := range pod.Status.Conditions {
		conditions = append(conditions, snapshot.PodCondition{
			Type:    string(cond.Type),
			Status:  string(cond.Status),
			Reason:  cond.Reason,
			Message: cond.Message,
		})
	}

	statuses := make([]snapshot.ContainerStatus, 0, len(pod.Status.ContainerStatuses))
	for _, cs := range pod.Status.ContainerStatuses {
		status := snapshot.ContainerStatus{
			Name:         cs.Name,
			Ready:        cs.Ready,
			RestartCount: int(cs.RestartCount),
		}
		if cs.State.Waiting != nil {
			status.State.Waiting = &snapshot.WaitingState{
				Reason:  cs.State.Waiting.Reason,
				Message: cs.State.Waiting.Message,
			}
		}
		statuses = append(statuses, status)
	}

	return snapshot.Pod{
		Metadata: snapshot.ObjectMeta{Name: pod.Name, Namespace: pod.Namespace},
		Spec: snapshot.PodSpec{
			NodeName:   pod.Spec.NodeName,
			Containers: containers,
		},
		Status: snapshot.PodStatus{
			Phase:             string(pod.Status.Phase),
			Conditions:        conditions,
			ContainerStatuses: statuses,
		},
	}
}

func resourceStrings(list corev1.ResourceList) snapshot.ResourceStrings {
	out := snapshot.ResourceStrings{}
	if q, ok := list[corev1.ResourceCPU]; ok {
		out.CPU = q.String()
	}
	if q, ok := list[corev1.ResourceMemory]; ok {
		out.Memory = q.String()
	}
	return out
}
