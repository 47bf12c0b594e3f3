package cli

import (
	"fmt"
	"strings"
	"syscall"

	"proxym-fin/internal/dto"
	"proxym-fin/internal/session"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(e *env) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(string(raw))
			}

			resp, err := e.rc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			p := session.Principal{
				ID:    resp.User.ID,
				Name:  resp.User.Name,
				Email: resp.User.Email,
				Role:  resp.User.Role,
				Token: resp.Token,
			}
			if err := e.session.Login(p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", p.Name, p.Email)
			switch session.RouteFor(&p) {
			case session.DestinationAdmin:
				fmt.Fprintln(cmd.OutOrStdout(), "Admin console available: proxym admin list <products|users|transactions>")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Dashboard available: proxym dashboard")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newSignupCmd(e *env) *cobra.Command {
	var (
		name     string
		password string
		age      int
	)

	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Register a new account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := e.rc.Signup(cmd.Context(), dto.SignupRequest{
				Name:     name,
				Email:    args[0],
				Password: password,
				Age:      age,
			})
			if err != nil {
				return err
			}
			p := session.Principal{
				ID:    resp.User.ID,
				Name:  resp.User.Name,
				Email: resp.User.Email,
				Role:  resp.User.Role,
				Token: resp.Token,
			}
			if err := e.session.Login(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created, logged in as %s\n", p.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().IntVar(&age, "age", 0, "Age")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := e.session.Current()
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s theme=%s\n", p.Name, p.Email, p.Role, e.session.Theme())
			return nil
		},
	}
}

func newThemeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the console theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), e.session.Theme())
				return nil
			}
			if err := e.session.SetTheme(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
			return nil
		},
	}
}
