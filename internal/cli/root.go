package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

type rootOptions struct {
	verbose    bool
	configPath string
}

// Execute runs the pagenav CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "pagenav",
		Short:        "pagenav drives a page router from the terminal",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("pagenav %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newScriptCmd(opts))
	return root
}

// setup loads the config, initializes logging and builds a router with the
// demo pages registered. reg may be nil to skip metrics.
func (o *rootOptions) setup(ctx context.Context, reg prometheus.Registerer) (*pagenav.Setup, error) {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, pagenav.NewInfrastructureError("load_config", err)
	}
	pagenav.Init(pagenav.Options{LogPath: cfg.LogPath, LogLevel: cfg.LogLevel, Debug: o.verbose})
	logger.Debug("config loaded", "path", o.configPath, "locale", cfg.Locale, "clear_mode", cfg.ClearMode)

	s, err := pagenav.NewRouter(ctx, cfg, reg, manifestPage)
	if err != nil {
		return nil, err
	}
	registerDemoPages(s.Router)
	return s, nil
}
