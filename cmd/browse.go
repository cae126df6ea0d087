package cmd

import (
	"fmt"
	"strings"

	"github.com/danielolaszy/ticketboard/internal/jira"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse KEY",
		Short: "Print the JIRA page of a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			if key == "" {
				return fmt.Errorf("ticket key is required")
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			cfg, err := a.store.Load()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), jira.BrowseURL(cfg, key))
			return nil
		},
	}
}

func newPortalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Print the customer portal of the project, where new tickets are opened",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			cfg, err := a.store.Load()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), jira.PortalURL(cfg))
			return nil
		},
	}
}
