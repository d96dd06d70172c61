package report

import (
	"fmt"

	"kube-binpack/internal/quantity"
	"kube-binpack/internal/snapshot"
)

// BuildCapacityIndex parses every node's allocatable quantities into
// canonical units. Missing allocatable fields default to zero; a malformed
// quantity aborts the build. Duplicate node names overwrite, last wins.
func BuildCapacityIndex(nodes []snapshot.Node) (CapacityIndex, error) {
	index := make(CapacityIndex, len(nodes))
	for _, node := range nodes {
		cpu, err := quantity.ParseCPU(node.Status.Allocatable.CPU)
		if err != nil {
			return nil, fmt.Errorf("node %s allocatable cpu: %w", node.Metadata.Name, err)
		}
		mem, err := quantity.ParseMemoryBytes(node.Status.Allocatable.Memory)
		if err != nil {
			return nil, fmt.Errorf("node %s allocatable memory: %w", node.Metadata.Name, err)
		}
		index[node.Metadata.Name] = NodeCapacity{
			Name:        node.Metadata.Name,
			CPUCores:    cpu,
			MemoryBytes: mem,
		}
	}
	return index, nil
}
