package main

import (
	"context"
	"errors"

	"github.com/goliatone/go-storefront"
	"github.com/spf13/cobra"
)

type loginConfig struct {
	email    string
	password string
}

// NewLoginCmd creates the login subcommand.
func NewLoginCmd() *cobra.Command {
	cfg := &loginConfig{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, d *deps) error {
				user, err := d.auther.Login(ctx, storefront.Credentials{
					Email:    cfg.email,
					Password: cfg.password,
				})
				if err != nil {
					return describeFailure(err)
				}
				d.ui.ShowToast("Welcome back, "+user.Name, storefront.ToastSuccess, 0)
				printJSON(cmd, user)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password")

	return cmd
}

type signupConfig struct {
	name     string
	email    string
	password string
	confirm  string
}

// NewSignupCmd creates the signup subcommand.
func NewSignupCmd() *cobra.Command {
	cfg := &signupConfig{}

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, d *deps) error {
				user, err := d.auther.Signup(ctx, storefront.SignupPayload{
					Name:            cfg.name,
					Email:           cfg.email,
					Password:        cfg.password,
					PasswordConfirm: cfg.confirm,
				})
				if err != nil {
					return describeFailure(err)
				}
				printJSON(cmd, user)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cfg.name, "name", "", "display name")
	cmd.Flags().StringVar(&cfg.email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.password, "password", "", "account password")
	cmd.Flags().StringVar(&cfg.confirm, "password-confirm", "", "password confirmation")

	return cmd
}

// NewLogoutCmd creates the logout subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and remove the stored token",
		Long: `End the session. The stored token is removed even when the API
can not be reached.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, d *deps) error {
				if err := d.auther.Logout(ctx); err != nil {
					return describeFailure(err)
				}
				cmd.Println("logged out")
				return nil
			})
		},
	}
}

// NewWhoamiCmd creates the whoami subcommand.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the restored user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(_ context.Context, d *deps) error {
				state := d.store.State()
				if !state.IsAuthenticated {
					return errors.New("not logged in")
				}
				printJSON(cmd, state.User)
				return nil
			})
		},
	}
}

type profileConfig struct {
	update storefront.ProfileUpdate
}

// NewProfileCmd creates the profile subcommand.
func NewProfileCmd() *cobra.Command {
	cfg := &profileConfig{}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update the profile of the logged in user",
		Long:  `Send the given profile fields as is. Empty fields are not sent.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithSession(cmd, func(ctx context.Context, d *deps) error {
				user, err := d.auther.UpdateProfile(ctx, cfg.update)
				if err != nil {
					return describeFailure(err)
				}
				printJSON(cmd, user)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cfg.update.Name, "name", "", "display name")
	cmd.Flags().StringVar(&cfg.update.Email, "email", "", "account email")
	cmd.Flags().StringVar(&cfg.update.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&cfg.update.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&cfg.update.Photo, "photo", "", "photo URL")

	return cmd
}
