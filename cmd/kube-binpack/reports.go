package main

import (
	"kube-binpack/internal/report"
	"kube-binpack/internal/snapshot"

	"github.com/spf13/cobra"
)

func newBinpackingCmd(a *app) *cobra.Command {
	var nodeFilter string
	var phases []string

	cmd := &cobra.Command{
		Use:   "binpacking",
		Short: "Per-node requested versus allocatable resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			snap, err := src.Snapshot(cmd.Context(), snapshot.Options{
				AllNamespaces: true,
				IncludeNodes:  true,
			})
			if err != nil {
				return err
			}

			index, err := report.BuildCapacityIndex(snap.Nodes)
			if err != nil {
				return err
			}
			filter := report.NewPhaseFilter(a.phases(cmd, phases, "Running")...)
			agg, err := report.Aggregate(snap.Pods, filter)
			if err != nil {
				return err
			}
			return emit(report.BuildBinpacking(index, agg, nodeFilter))
		},
	}
	cmd.Flags().StringVar(&nodeFilter, "node", "", "restrict the report to a single node")
	cmd.Flags().StringSliceVar(&phases, "phases", []string{"Running"}, "pod phases included in the aggregation")
	return cmd
}

func newRequestsCmd(a *app) *cobra.Command {
	var phases []string

	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Aggregate resource requests and limits across pods",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			snap, err := src.Snapshot(cmd.Context(), a.namespaceOptions())
			if err != nil {
				return err
			}

			filter := report.NewPhaseFilter(a.phases(cmd, phases, "Running", "Pending")...)
			agg, err := report.Aggregate(snap.Pods, filter)
			if err != nil {
				return err
			}
			return emit(report.BuildRequests(agg))
		},
	}
	cmd.Flags().StringSliceVar(&phases, "phases", []string{"Running", "Pending"}, "pod phases included in the aggregation")
	return cmd
}

func newPendingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Pods stuck in the Pending phase with their reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			snap, err := src.Snapshot(cmd.Context(), a.namespaceOptions())
			if err != nil {
				return err
			}
			return emit(report.BuildPending(snap.Pods))
		},
	}
}

func newRestartsCmd(a *app) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "restarts",
		Short: "Containers restarted more than a threshold, most restarted first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.RestartThreshold
			}
			src, err := a.source()
			if err != nil {
				return err
			}
			snap, err := src.Snapshot(cmd.Context(), a.namespaceOptions())
			if err != nil {
				return err
			}
			return emit(report.BuildRestarts(snap.Pods, threshold))
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", 0, "report containers with more restarts than this")
	return cmd
}

func newNodePodsCmd(a *app) *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "node-pods",
		Short: "All pods scheduled on one node",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			opts := a.namespaceOptions()
			opts.FieldSelector = "spec.nodeName=" + node
			snap, err := src.Snapshot(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return emit(report.BuildNodePods(node, snap.Pods))
		},
	}
	cmd.Flags().StringVar(&node, "node", "", "node name to inspect")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}
