// Package kubectl fetches cluster snapshots by shelling out to the kubectl
// binary and decoding its JSON output.
package kubectl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"kube-binpack/internal/snapshot"
)

// FetchError reports a failed kubectl invocation. The report pipeline aborts
// on it; no partial snapshot is ever produced.
type FetchError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FetchError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("kubectl %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Runner executes kubectl queries with a per-query timeout.
type Runner struct {
	path    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner constructs a Runner. An empty path falls back to "kubectl" on
// PATH.
func NewRunner(path string, timeout time.Duration, logger *slog.Logger) *Runner {
	if path == "" {
		path = "kubectl"
	}
	return &Runner{path: path, timeout: timeout, logger: logger}
}

// Snapshot fetches nodes (when requested) and pods in one pass.
func (r *Runner) Snapshot(ctx context.Context, opts snapshot.Options) (snapshot.Snapshot, error) {
	snap := snapshot.Snapshot{Timestamp: time.Now().UTC()}

	if opts.IncludeNodes {
		var nodes snapshot.NodeList
		if err := r.get(ctx, []string{"get", "nodes"}, &nodes); err != nil {
			return snapshot.Snapshot{}, err
		}
		snap.Nodes = nodes.Items
	}

	podArgs := []string{"get", "pods"}
	switch {
	case opts.AllNamespaces:
		podArgs = append(podArgs, "--all-namespaces")
	case opts.Namespace != "":
		podArgs = append(podArgs, "-n", opts.Namespace)
	}
	if opts.FieldSelector != "" {
		podArgs = append(podArgs, "--field-selector", opts.FieldSelector)
	}
	var pods snapshot.PodList
	if err := r.get(ctx, podArgs, &pods); err != nil {
		return snapshot.Snapshot{}, err
	}
	snap.Pods = pods.Items
	return snap, nil
}

func (r *Runner) get(ctx context.Context, args []string, out any) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	args = append(args, "-o", "json")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return &FetchError{Args: args, Stderr: stderr.String(), Err: err}
	}
	r.logger.Debug("kubectl query",
		slog.String("args", strings.Join(args, " ")),
		slog.Duration("duration", time.Since(start)))

	if err := json.Unmarshal(stdout.Bytes(), out); err != nil {
		return &FetchError{Args: args, Err: fmt.Errorf("decode output: %w", err)}
	}
	return nil
}
