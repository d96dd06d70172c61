// Command kube-binpack produces bin-packing and resource-request reports for
// a Kubernetes cluster from a point-in-time snapshot of its nodes and pods.
package main

import (
	"encoding/json"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Fatal conditions emit a structured error document on stdout so
		// downstream consumers always get valid JSON.
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(payload))
		os.Exit(1)
	}
}
