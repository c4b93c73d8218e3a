package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/shelf/internal/config"
	"github.com/idilsaglam/shelf/internal/ui"
)

// Store credentials for password-protected backends (redis).

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the store password",
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr("usage: shelf auth <login|logout|status>")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(newAuthLoginCmd(), newAuthLogoutCmd(), newAuthStatusCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Save the store password",
		Args:  noArgs("shelf auth login"),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Store password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(line) == "" {
				return fmt.Errorf("read password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err := config.SetPassword(line); err != nil {
				return fmt.Errorf("save password: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "password saved")
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved store password",
		Args:  noArgs("shelf auth logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := config.GetCredentials()
			if c != nil && c.Source == "env" {
				ui.OK(cmd.OutOrStdout(), "password is provided by "+config.EnvPassword+" (nothing to delete)")
				return nil
			}
			if err := config.DeleteCredentials(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "password forgotten")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the store password comes from",
		Args:  noArgs("shelf auth status"),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c, err := config.GetCredentials()
			if err != nil {
				return err
			}
			if c == nil {
				fmt.Fprintln(out, ui.Current().Muted.Render("no password saved"))
				fmt.Fprintln(out, "Run: shelf auth login")
				return nil
			}
			fmt.Fprintf(out, "source: %s\n", c.Source)
			if !c.CreatedAt.IsZero() {
				fmt.Fprintf(out, "saved: %s\n", c.CreatedAt.UTC().Format(time.RFC3339))
			}
			fmt.Fprintln(out, "env override: "+config.EnvPassword)
			return nil
		},
	}
}
