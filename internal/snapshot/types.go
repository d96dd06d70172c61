// Package snapshot defines the point-in-time cluster documents consumed by
// the report builders. The types mirror the JSON shape of
// `kubectl get ... -o json` output; quantity fields stay raw strings here and
// are only converted to numeric units at the report layer.
package snapshot

import (
	"context"
	"time"
)

// ObjectMeta carries the identifying metadata of a node or pod item.
type ObjectMeta struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
}

// ResourceStrings holds the raw quantity strings of one resource map. An
// absent field stays empty and contributes zero downstream.
type ResourceStrings struct {
	CPU    string `json:"cpu,omitempty"`
	Memory string `json:"memory,omitempty"`
}

// NodeStatus carries the allocatable capacity of a node.
type NodeStatus struct {
	Allocatable ResourceStrings `json:"allocatable"`
}

// Node is one item of a node list document.
type Node struct {
	Metadata ObjectMeta `json:"metadata"`
	Status   NodeStatus `json:"status"`
}

// NodeList mirrors the `kubectl get nodes -o json` document.
type NodeList struct {
	Items []Node `json:"items"`
}

// ContainerResources mirrors the optional resources block of a container.
type ContainerResources struct {
	Requests ResourceStrings `json:"requests,omitempty"`
	Limits   ResourceStrings `json:"limits,omitempty"`
}

// Container is the subset of a container spec the reports read.
type Container struct {
	Name      string             `json:"name"`
	Resources ContainerResources `json:"resources,omitempty"`
}

// PodSpec carries scheduling placement and the container specs.
type PodSpec struct {
	NodeName   string      `json:"nodeName,omitempty"`
	Containers []Container `json:"containers"`
}

// PodCondition is one entry of a pod's status conditions.
type PodCondition struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// WaitingState explains why a container has not started.
type WaitingState struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ContainerState carries the waiting state when present.
type ContainerState struct {
	Waiting *WaitingState `json:"waiting,omitempty"`
}

// ContainerStatus is the runtime status of one container.
type ContainerStatus struct {
	Name         string         `json:"name"`
	Ready        bool           `json:"ready"`
	RestartCount int            `json:"restartCount"`
	State        ContainerState `json:"state,omitempty"`
}

// PodStatus carries the lifecycle phase and per-container statuses.
type PodStatus struct {
	Phase             string            `json:"phase"`
	Conditions        []PodCondition    `json:"conditions,omitempty"`
	ContainerStatuses []ContainerStatus `json:"containerStatuses,omitempty"`
}

// Pod is one item of a pod list document.
type Pod struct {
	Metadata ObjectMeta `json:"metadata"`
	Spec     PodSpec    `json:"spec"`
	Status   PodStatus  `json:"status"`
}

// PodList mirrors the `kubectl get pods -o json` document.
type PodList struct {
	Items []Pod `json:"items"`
}

// Snapshot is one complete fetch of cluster state. Reports are always built
// from a single snapshot; nothing persists across fetches.
type Snapshot struct {
	Timestamp time.Time
	Nodes     []Node
	Pods      []Pod
}

// Options narrows what a Source fetches.
type Options struct {
	Namespace     string
	AllNamespaces bool
	FieldSelector string
	IncludeNodes  bool
}

// Source produces complete snapshots. A failed fetch returns an error and no
// partial snapshot.
type Source interface {
	Snapshot(ctx context.Context, opts Options) (Snapshot, error)
}
