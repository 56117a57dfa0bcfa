package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"glassstore/internal/app"
	"glassstore/internal/importer"

	"github.com/spf13/cobra"
)

func main() {
	var filePath string
	cmd := &cobra.Command{
		Use:          "importer",
		Short:        "Import glass products from a CSV file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := app.Bootstrap(ctx, "importer")
			if err != nil {
				return err
			}
			defer rt.Close()

			if !rt.Session.IsAdmin() {
				return fmt.Errorf("an admin session is required; run storefront login --admin first")
			}

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			start := time.Now()
			count, err := importer.NewCSVImporter(f, rt.Client).Run(ctx)
			if err != nil {
				return fmt.Errorf("import failed after %d products: %w", count, err)
			}
			fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "path to the product CSV")
	_ = cmd.MarkFlagRequired("file")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
