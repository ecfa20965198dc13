package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage the stored OpenAI API key",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-key <key>",
		Short: "Store the API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("%w: key is empty", domain.ErrInvalidInput)
			}
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()
			if err := stack.Settings.Set(cmd.Context(), ports.SettingAPIKey, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key saved.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-key",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()
			if err := stack.Settings.Delete(cmd.Context(), ports.SettingAPIKey); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key removed.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether an API key is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := loadStack(cmd)
			if err != nil {
				return err
			}
			defer stack.Close()

			out := cmd.OutOrStdout()
			if stack.Config.OpenAI.APIKey != "" {
				fmt.Fprintln(out, "API key: set by environment")
				return nil
			}
			_, err = stack.Settings.Get(cmd.Context(), ports.SettingAPIKey)
			switch {
			case err == nil:
				fmt.Fprintln(out, "API key: stored")
			case errors.Is(err, domain.ErrSettingNotFound):
				fmt.Fprintln(out, "API key: not configured")
			default:
				return err
			}
			return nil
		},
	})
	return cmd
}
