// Package cli implements the console binary: login, personal dashboard and
// the admin record browser, on top of the platform's HTTP API.
package cli

import (
	"fmt"
	"os"

	"proxym-fin/internal/client"
	"proxym-fin/internal/session"
	"proxym-fin/pkg/config"
	"proxym-fin/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds everything a command needs: the resource client, the persisted
// session and the logger. Built once per invocation.
type env struct {
	cfg     *config.Config
	rc      *client.Client
	session *session.Store
	logger  *zap.Logger
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd, err := newRootCmd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() (*cobra.Command, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	appLogger := logger.Get()
	store, err := session.NewStore(cfg.Session.Path, appLogger)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:     cfg,
		rc:      client.New(cfg.Client.BaseURL, cfg.Client.Timeout),
		session: store,
		logger:  appLogger,
	}
	if p := store.Current(); p != nil {
		e.rc.SetToken(p.Token)
	}

	rootCmd := &cobra.Command{
		Use:           "proxym",
		Short:         "Proxym finance console",
		Long:          "Command-line console for the Proxym finance platform: personal dashboard, AI chat and record administration.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newLoginCmd(e),
		newSignupCmd(e),
		newLogoutCmd(e),
		newWhoamiCmd(e),
		newThemeCmd(e),
		newDashboardCmd(e),
		newSpendCmd(e),
		newChatCmd(e),
		newAdminCmd(e),
	)
	return rootCmd, nil
}

// requireLogin returns the current principal or an error telling the user to
// log in first.
func (e *env) requireLogin() (*session.Principal, error) {
	p := e.session.Current()
	if p == nil {
		return nil, fmt.Errorf("not logged in, run \"proxym login\" first")
	}
	return p, nil
}

func (e *env) requireAdmin() (*session.Principal, error) {
	p, err := e.requireLogin()
	if err != nil {
		return nil, err
	}
	if session.RouteFor(p) != session.DestinationAdmin {
		return nil, fmt.Errorf("admin access required")
	}
	return p, nil
}
