// Package cmd provides the command-line interface for ticketboard.
package cmd

import (
	"net/http"
	"os"
	"strings"

	"github.com/danielolaszy/ticketboard/internal/board"
	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/jira"
	"github.com/danielolaszy/ticketboard/internal/logging"
	"github.com/danielolaszy/ticketboard/internal/metrics"
	"github.com/spf13/cobra"
)

// jiraTransport is the base transport of the JIRA client; nil means
// http.DefaultTransport.
var jiraTransport http.RoundTripper

// NewRootCmd builds the ticketboard command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ticketboard",
		Short: "Ticketboard shows the service desk tickets of a JIRA project",
		Long: `Ticketboard is a dashboard for the service desk tickets of a single JIRA
Cloud project. It serves an HTML board with status filters, search and
per-status counts, and offers the same view in the terminal.

When the JIRA credentials are missing or a request fails, a small set of
sample tickets is shown instead so the board is never empty.`,
		SilenceUsage: true,
	}

	// Add persistent flags that will be available to all commands
	rootCmd.PersistentFlags().String("credentials", config.DefaultCredentialsPath(), "Path of the JIRA credentials file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("locale", config.DefaultLocale, "Locale used to format ticket dates")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultRequestTimeout, "Timeout of each JIRA request; 0 disables it")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newPortalCmd())

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// app bundles the components shared by the subcommands.
type app struct {
	settings *config.Settings
	store    *config.Store
	provider *metrics.PrometheusProvider
	svc      *board.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, err
	}

	format := logging.Format(strings.ToLower(os.Getenv("LOG_FORMAT")))
	logging.Setup(cmd.ErrOrStderr(), logging.LogLevel(settings.LogLevel), format)

	store := config.NewStore(config.NewFileStorage(settings.CredentialsPath))
	provider := metrics.NewPrometheusProvider()
	client := jira.NewClient(
		jira.WithTransport(jiraTransport),
		jira.WithMetrics(provider),
		jira.WithTimeout(settings.RequestTimeout),
	)

	logging.Debug("settings resolved",
		"credentials", settings.CredentialsPath,
		"locale", settings.Locale,
		"timeout", settings.RequestTimeout)

	return &app{
		settings: settings,
		store:    store,
		provider: provider,
		svc:      board.NewService(store, client, board.New(), provider),
	}, nil
}
