package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"kube-binpack/internal/config"
	"kube-binpack/internal/kube"
	"kube-binpack/internal/kubectl"
	"kube-binpack/internal/logging"
	"kube-binpack/internal/snapshot"
	"kube-binpack/internal/version"

	"github.com/spf13/cobra"
)

// app carries the resolved configuration and logger shared by all
// subcommands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string

	cmd := &cobra.Command{
		Use:           "kube-binpack",
		Short:         "Bin-packing and resource request reports for Kubernetes clusters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			// Flags override file and env values, but only when set.
			flags := cmd.Flags()
			if flags.Changed("kubectl") {
				cfg.KubectlPath, _ = flags.GetString("kubectl")
			}
			if flags.Changed("kubeconfig") {
				cfg.KubeconfigPath, _ = flags.GetString("kubeconfig")
			}
			if flags.Changed("source") {
				cfg.Source, _ = flags.GetString("source")
			}
			if flags.Changed("namespace") {
				cfg.Namespace, _ = flags.GetString("namespace")
			}
			if flags.Changed("log-level") {
				cfg.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("timeout") {
				cfg.RequestTimeout, _ = flags.GetDuration("timeout")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logging.New(cfg.LogLevel, os.Stderr)
			return nil
		},
	}

	defaults := config.DefaultConfig()
	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to YAML config file")
	pf.String("kubectl", defaults.KubectlPath, "path to the kubectl binary")
	pf.String("kubeconfig", "", "path to kubeconfig (api source only)")
	pf.String("source", defaults.Source, "snapshot source: kubectl or api")
	pf.StringP("namespace", "n", "", "namespace to report on (empty or \"all\" means all namespaces)")
	pf.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	pf.Duration("timeout", defaults.RequestTimeout, "timeout per snapshot query")

	cmd.AddCommand(
		newBinpackingCmd(a),
		newRequestsCmd(a),
		newPendingCmd(a),
		newRestartsCmd(a),
		newNodePodsCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// source builds the configured snapshot source.
func (a *app) source() (snapshot.Source, error) {
	switch a.cfg.Source {
	case config.SourceAPI:
		client, err := kube.NewClientset(a.cfg.KubeconfigPath)
		if err != nil {
			return nil, err
		}
		return kube.NewSource(client, a.logger), nil
	default:
		return kubectl.NewRunner(a.cfg.KubectlPath, a.cfg.RequestTimeout, a.logger), nil
	}
}

// namespaceOptions maps the configured namespace onto fetch options. An
// empty value and the "all" sentinel both mean every namespace.
func (a *app) namespaceOptions() snapshot.Options {
	if a.cfg.Namespace == "" || a.cfg.Namespace == "all" {
		return snapshot.Options{AllNamespaces: true}
	}
	return snapshot.Options{Namespace: a.cfg.Namespace}
}

// phases resolves the aggregation phase filter: an explicit --phases flag
// wins, then the config file, then the per-command default.
func (a *app) phases(cmd *cobra.Command, flagValue []string, fallback ...string) []string {
	if cmd.Flags().Changed("phases") {
		return flagValue
	}
	if len(a.cfg.Phases) > 0 {
		return a.cfg.Phases
	}
	return fallback
}

func emit(v any) error {
	return json.NewEncoder(os.Stdout).Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Value())
		},
	}
}
