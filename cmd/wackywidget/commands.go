package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Keatongull/wackywidget/internal/config"
	"github.com/Keatongull/wackywidget/internal/logbook"
	"github.com/Keatongull/wackywidget/internal/logging"
	"github.com/Keatongull/wackywidget/internal/metrics"
	"github.com/Keatongull/wackywidget/internal/shell"
)

type rootOptions struct {
	configPath  string
	mode        string
	metricsAddr string
	workDir     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "wackywidget",
		Short: "Manage the Wacky Widget organization chart",
		Long: `wackywidget keeps a President, Vice Presidents, Supervisors and Workers in a
capacity-limited hierarchy. The first line names the President; after that
enter HIRE, FIRE, QUIT, LAYOFF, TRANSFER, PROMOTE, DISPLAY or HELP.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default .wackywidget/config.yaml, or $"+config.EnvConfigPath+")")
	root.PersistentFlags().StringVar(&opts.workDir, "dir", "", "working directory (default current directory)")
	root.Flags().StringVar(&opts.mode, "mode", "", "interface: auto, line or tui")
	root.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	root.AddCommand(newInitCmd(opts))
	return root
}

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .wackywidget/config.yaml with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := opts.dir()
			if err != nil {
				return err
			}
			path, err := config.InitDir(workDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config ready at %s\n", path)
			return nil
		},
	}
}

func (o *rootOptions) dir() (string, error) {
	if o.workDir != "" {
		return o.workDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	workDir, err := opts.dir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(workDir, opts.configPath)
	if err != nil {
		return err
	}
	if opts.mode != "" {
		if err := cfg.SetMode(opts.mode); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.SetMetricsAddr(opts.metricsAddr)
	}

	logger, err := logging.New(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logger.Close()

	journal, err := logbook.New(cfg.JournalPath())
	if err != nil {
		return err
	}
	logger.Printf("session %s started (config %s, mode %s)", journal.Session(), cfg.Path, cfg.Mode())

	recorder := metrics.NewRecorder()
	sh := shell.New(
		shell.WithJournal(journal),
		shell.WithMetrics(recorder),
		shell.WithLogger(logger),
		shell.WithPrompt(cfg.Prompt()),
	)

	err = runSession(cmd.Context(), cfg, sh, recorder, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		logger.Printf("session %s ended: %v", journal.Session(), err)
		return err
	}
	logger.Printf("session %s ended", journal.Session())
	return nil
}
