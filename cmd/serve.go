package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/logging"
	"github.com/danielolaszy/ticketboard/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ticket dashboard",
		Long: `Start the HTTP ticket dashboard.

If the stored email or token is missing the board shows the sample tickets
right away. Otherwise the first load starts in the background and the page
shows the loading status until it completes.

Example:
  ticketboard serve --listen :8080 --locale pt-BR`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := a.store.Load()
			if err != nil {
				return err
			}

			if cfg.HasCredentials() {
				go a.svc.Load(ctx)
			} else {
				logging.Info("no jira credentials stored, showing sample tickets",
					"credentials", a.settings.CredentialsPath)
				a.svc.ShowFallback()
			}

			srv := server.New(a.svc, server.Options{
				Locale:         a.settings.Locale,
				Metrics:        a.provider,
				MetricsHandler: a.provider.Handler(),
				Pprof:          a.settings.Pprof,
			})
			return srv.ListenAndServe(ctx, a.settings.ListenAddress)
		},
	}

	serveCmd.Flags().String("listen", config.DefaultListenAddress, "Address the dashboard listens on")
	serveCmd.Flags().Bool("pprof", false, "Expose runtime profiling under /debug/pprof")

	return serveCmd
}
