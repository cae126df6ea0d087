package cmd

import (
	"fmt"

	"github.com/danielolaszy/ticketboard/internal/board"
	"github.com/danielolaszy/ticketboard/internal/logging"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the JIRA credentials",
	}

	configCmd.AddCommand(newConfigSetCmd())
	configCmd.AddCommand(newConfigShowCmd())

	return configCmd
}

func newConfigSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store the JIRA instance, account and project",
		Long: `Store the JIRA connection parameters in the credentials file.

Flags that are not given keep their stored value. The instance URL, email
and API token are required; the project key may be blank.

Example:
  ticketboard config set --email you@example.com --token <api-token> --project 105`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			cfg, err := a.store.Load()
			if err != nil {
				return err
			}

			for flag, field := range map[string]*string{
				"url":     &cfg.InstanceURL,
				"email":   &cfg.AccountEmail,
				"token":   &cfg.APIToken,
				"project": &cfg.ProjectKey,
			} {
				if cmd.Flags().Changed(flag) {
					*field, _ = cmd.Flags().GetString(flag)
				}
			}

			if err := a.svc.SaveConfiguration(cfg); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), board.ErrorMessage(err).Text)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), board.SavedMessage.Text)
			return nil
		},
	}

	setCmd.Flags().String("url", "", "JIRA instance URL")
	setCmd.Flags().String("email", "", "JIRA account email")
	setCmd.Flags().String("token", "", "JIRA API token")
	setCmd.Flags().String("project", "", "JIRA project key")

	return setCmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored JIRA configuration",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "URL:      %s\n", cfg.InstanceURL)
			fmt.Fprintf(out, "Email:    %s\n", cfg.AccountEmail)
			fmt.Fprintf(out, "Token:    %s\n", logging.MaskSensitive(cfg.APIToken))
			fmt.Fprintf(out, "Projeto:  %s\n", cfg.ProjectKey)
			fmt.Fprintf(out, "Arquivo:  %s\n", a.settings.CredentialsPath)
			return nil
		},
	}
}
