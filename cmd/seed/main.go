package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"glassstore/internal/app"
	"glassstore/internal/seed"
	"glassstore/internal/session"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var email, password, code string
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Create the bundled catalog products on the backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := app.Bootstrap(ctx, "seed")
			if err != nil {
				return err
			}
			defer rt.Close()

			if email != "" {
				if _, err := rt.Admin.Login(ctx, email, password, code); err != nil {
					rt.Logger.WithError(err).Error(session.Describe(err))
					return err
				}
			}
			data, err := rt.Catalog()
			if err != nil {
				return err
			}
			res, err := seed.Apply(ctx, rt.Client, data, rt.Logger)
			if err != nil {
				return err
			}
			rt.Logger.WithFields(logrus.Fields{"created": res.Created, "skipped": res.Skipped}).Info("seed applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email; the stored session is used when empty")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&code, "code", "", "admin access code")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
