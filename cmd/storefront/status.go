package main

import (
	"context"
	"time"

	"github.com/goliatone/go-storefront"
	"github.com/spf13/cobra"
)

// SessionStatus is what status reports about the local session
type SessionStatus struct {
	Driver        string                `json:"driver"`
	APIBaseURL    string                `json:"api_base_url"`
	HasToken      bool                  `json:"has_token"`
	Token         *storefront.TokenInfo `json:"token,omitempty"`
	TokenExpired  bool                  `json:"token_expired,omitempty"`
	Restore       string                `json:"restore"`
	Authenticated bool                  `json:"authenticated"`
	Role          string                `json:"role,omitempty"`
	AdminAccess   string                `json:"admin_access"`
	Error         string                `json:"error,omitempty"`
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the local session",
		Long: `Show the token store, what the stored token claims and whether
the session could be restored against the API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			d, err := newDeps(ctx, cmd)
			if err != nil {
				return err
			}
			defer d.close()

			printJSON(cmd, collectStatus(ctx, d, time.Now()))
			return nil
		},
	}
}

func collectStatus(ctx context.Context, d *deps, now time.Time) SessionStatus {
	status := SessionStatus{
		Driver:     d.cfg.Token.Driver,
		APIBaseURL: d.cfg.GetAPIBaseURL(),
	}

	token, err := d.tokens.Get(ctx)
	if err != nil {
		status.Error = err.Error()
	}
	status.HasToken = token != ""

	if status.HasToken {
		if info, err := storefront.ParseTokenInfo(token); err == nil {
			status.Token = info
			status.TokenExpired = info.ExpiredAt(now)
		}
	}

	status.Restore = d.restorer.Restore(ctx).String()

	state := d.store.State()
	status.Authenticated = state.IsAuthenticated
	if state.User != nil {
		status.Role = string(state.User.Role)
	}
	status.AdminAccess = d.guard.Check(ctx).Decision.String()

	return status
}
