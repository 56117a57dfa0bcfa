package main

import (
	"fmt"
	"time"

	"glassstore/internal/app"
	"glassstore/internal/domain"
	"glassstore/internal/session"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		email, password, code string
		admin                 bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			var user *domain.User
			if admin {
				user, err = rt.Admin.Login(cmd.Context(), email, password, code)
				if err != nil {
					return fmt.Errorf("%s", session.Describe(err))
				}
			} else {
				user, err = rt.Session.Login(cmd.Context(), email, password)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&admin, "admin", false, "sign in through the admin gate")
	cmd.Flags().StringVar(&code, "code", "", "admin access code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.Session.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", user.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			user := rt.Session.User()
			if user == nil {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			role := user.Role
			if remote {
				if user, err = rt.Client.Profile(cmd.Context()); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "%s <%s> role=%s\n", user.Name, user.Email, role)
			if exp, ok := session.TokenExpiry(rt.Session.Token()); ok {
				fmt.Fprintf(out, "token expires %s\n", exp.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the profile from the backend")
	return cmd
}
