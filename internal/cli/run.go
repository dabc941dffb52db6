package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/input"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive navigator",
		Long: `Open a terminal renderer for the demo pages. History is restored from the
configured store on start and saved on exit. A back key on the configured
evdev device navigates back even while the terminal is unfocused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			logger := loggerFromContext(ctx)

			reg := prometheus.NewRegistry()
			setup, err := opts.setup(ctx, reg)
			if err != nil {
				return err
			}
			defer pagenav.Close()

			if metricsAddr != "" {
				srv := metricsServer(metricsAddr, reg)
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server stopped", "err", err)
					}
				}()
				defer func() {
					shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
					defer done()
					_ = srv.Shutdown(shutdownCtx)
				}()
				logger.Info("serving metrics", "addr", metricsAddr)
			}

			p := tea.NewProgram(newNavModel(ctx, setup, setup.Resume(ctx)), tea.WithAltScreen(), tea.WithContext(ctx))

			if dev := setup.Config.Input.Device; dev != "" {
				bb, err := input.OpenBackButton(dev, func() { p.Send(backMsg{}) })
				if err != nil {
					logger.Warn("back button unavailable", "device", dev, "err", err)
				} else {
					go func() {
						if err := bb.Run(ctx); err != nil {
							logger.Error("back button stopped", "device", dev, "err", err)
						}
					}()
				}
			}

			_, runErr := p.Run()
			if errors.Is(runErr, tea.ErrProgramKilled) {
				runErr = ctx.Err()
			}

			if err := setup.Persist(context.WithoutCancel(ctx)); err != nil {
				logger.Error("history not saved", "err", err)
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
}
