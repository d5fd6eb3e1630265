package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"scanpos/internal/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange credentials for an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if len(username) < 3 {
			return fmt.Errorf("username must be at least 3 characters")
		}
		if len(password) < 3 {
			return fmt.Errorf("password must be at least 3 characters")
		}

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			resp, err := a.client.Login(ctx, domain.LoginRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := a.session.Save(resp.AccessToken); err != nil {
				return fmt.Errorf("store access token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(_ context.Context, a *app) error {
			if err := a.session.Invalidate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "account username")
	loginCmd.Flags().StringP("password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}
