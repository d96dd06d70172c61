package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kube-binpack/internal/exporter"
	"kube-binpack/internal/report"
	"kube-binpack/internal/snapshot"
	"kube-binpack/internal/version"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Periodically rebuild reports and expose them over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			src, err := a.source()
			if err != nil {
				return err
			}

			store := exporter.NewStore()
			prom := exporter.NewPrometheusExporter()
			mux := http.NewServeMux()
			exporter.NewHTTPAPI(store, version.Value()).Register(mux)
			mux.Handle("/metrics", prom.Handler())
			server := exporter.NewServer(a.cfg.ListenAddr, mux, a.logger)

			a.logger.Info("starting kube-binpack",
				slog.String("version", version.Value()),
				slog.String("source", a.cfg.Source),
				slog.Duration("interval", a.cfg.ScrapeInterval()))

			refresh := func(ctx context.Context) {
				start := time.Now()
				snap, err := src.Snapshot(ctx, snapshot.Options{AllNamespaces: true, IncludeNodes: true})
				if err != nil {
					a.logger.Error("snapshot fetch failed", slog.String("error", err.Error()))
					return
				}
				set, err := buildReportSet(snap, a.cfg.Phases)
				if err != nil {
					// A bad quantity poisons the whole report; keep serving
					// the previous one.
					a.logger.Error("report build failed", slog.String("error", err.Error()))
					return
				}
				store.Update(set)
				prom.Update(set.Binpacking)
				a.logger.Info("reports refreshed",
					slog.Int("nodes", len(set.Binpacking.Nodes)),
					slog.Int("pods", len(set.Requests.Pods)),
					slog.Duration("duration", time.Since(start)))
			}

			refresh(ctx)
			go func() {
				ticker := time.NewTicker(a.cfg.ScrapeInterval())
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						refresh(ctx)
					}
				}
			}()

			return server.Run(ctx)
		},
	}
	return cmd
}

// buildReportSet runs the full pipeline on one snapshot. The bin-packing
// report keeps its Running default unless phases are configured; the
// requests form always includes Pending pods as well.
func buildReportSet(snap snapshot.Snapshot, phases []string) (exporter.ReportSet, error) {
	index, err := report.BuildCapacityIndex(snap.Nodes)
	if err != nil {
		return exporter.ReportSet{}, err
	}

	binpackPhases := phases
	if len(binpackPhases) == 0 {
		binpackPhases = []string{"Running"}
	}
	agg, err := report.Aggregate(snap.Pods, report.NewPhaseFilter(binpackPhases...))
	if err != nil {
		return exporter.ReportSet{}, err
	}
	reqAgg, err := report.Aggregate(snap.Pods, report.NewPhaseFilter("Running", "Pending"))
	if err != nil {
		return exporter.ReportSet{}, err
	}

	return exporter.ReportSet{
		GeneratedAt: snap.Timestamp,
		Binpacking:  report.BuildBinpacking(index, agg, ""),
		Requests:    report.BuildRequests(reqAgg),
		Pending:     report.BuildPending(snap.Pods),
	}, nil
}
