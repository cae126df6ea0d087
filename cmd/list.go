package cmd

import (
	"github.com/danielolaszy/ticketboard/internal/board"
	"github.com/danielolaszy/ticketboard/internal/jira"
	"github.com/danielolaszy/ticketboard/internal/render"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the project's tickets",
		Long: `Fetch the project's tickets and print the counts per status followed by
one card per ticket. When the fetch fails the sample tickets are printed
under the error message.

Example:
  ticketboard list --status "In Progress" --search vpn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := cmd.Flags().GetString("status")
			if err != nil {
				return err
			}

			search, err := cmd.Flags().GetString("search")
			if err != nil {
				return err
			}

			width, err := cmd.Flags().GetInt("width")
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			a.svc.Load(cmd.Context())

			cfg, err := a.svc.Configuration()
			if err != nil {
				return err
			}

			r := render.Terminal{
				Options: render.Options{
					Locale: a.settings.Locale,
					Link: func(key string) string {
						return jira.BrowseURL(cfg, key)
					},
				},
				Width: width,
			}
			snap := a.svc.Board().View(board.Filter{Status: status, Search: search})
			return r.Render(cmd.OutOrStdout(), snap)
		},
	}

	listCmd.Flags().String("status", "", `Only show tickets with this status, e.g. "To Do"`)
	listCmd.Flags().String("search", "", "Only show tickets whose summary, key or description contains this text")
	listCmd.Flags().Int("width", 80, "Card width in terminal cells")

	return listCmd
}
