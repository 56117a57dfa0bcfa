package main

import (
	"context"
	"fmt"
	"os"

	"glassstore/internal/config"
	"glassstore/internal/db"
	"glassstore/internal/logging"
	"glassstore/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the schema of the postgres storage backend",
		SilenceUsage: true,
	}
	root.AddCommand(
		migrateCmd("up", "Apply pending migrations", func(ctx context.Context, pool *pgxpool.Pool, logger *logrus.Entry) error {
			if err := migrate.Apply(ctx, pool); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		}),
		migrateCmd("down", "Revert all migrations", func(ctx context.Context, pool *pgxpool.Pool, logger *logrus.Entry) error {
			if err := migrate.Rollback(ctx, pool); err != nil {
				return err
			}
			logger.Info("migrations reverted")
			return nil
		}),
		migrateCmd("version", "Print the applied schema version", func(ctx context.Context, pool *pgxpool.Pool, logger *logrus.Entry) error {
			v, dirty, ok, err := migrate.Version(ctx, pool)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no migrations applied")
				return nil
			}
			fmt.Printf("version %d (dirty=%t)\n", v, dirty)
			return nil
		}),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd(use, short string, fn func(context.Context, *pgxpool.Pool, *logrus.Entry) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat, "migrate")

			pool, err := db.Connect(cmd.Context(), cfg.DBConnString)
			if err != nil {
				return err
			}
			defer pool.Close()
			return fn(cmd.Context(), pool, logger)
		},
	}
}
