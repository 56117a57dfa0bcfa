package main

import (
	"fmt"
	"text/tabwriter"

	"glassstore/internal/app"
	"glassstore/internal/catalog"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			h, err := rt.Client.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "backend %s, database %s\n", h.Status, h.Database)
			return nil
		},
	}
}

func newProductsCmd() *cobra.Command {
	var q catalog.Query
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List glass products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			data, err := rt.Catalog()
			if err != nil {
				return err
			}
			listing, err := catalog.NewService(rt.Client, data, rt.Logger).ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if listing.Notice != "" {
				fmt.Fprintln(out, listing.Notice)
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE/SQFT")
			for _, p := range listing.Products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", p.ID, p.Name, p.Category, p.BasePrice)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "match name or description")
	cmd.Flags().StringVar(&q.Category, "category", catalog.AllCategories, "category filter")
	return cmd
}

func newOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List orders of the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			if !rt.Session.IsAuthenticated() {
				return fmt.Errorf("not signed in; run storefront login first")
			}
			orders, err := rt.Client.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ORDER\tSTATUS\tTOTAL\tPLACED")
			for _, o := range orders {
				number := o.OrderNumber
				if number == "" {
					number = o.ID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", number, o.Status, o.TotalAmount, o.CreatedAt)
			}
			return w.Flush()
		},
	}
}

// newRemoteCartCmd shows the cart the backend keeps for the signed-in user.
// The local cart of a running serve process is separate.
func newRemoteCartCmd() *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "remote-cart",
		Short: "Show or clear the backend's cart for the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := app.Bootstrap(cmd.Context(), "cli")
			if err != nil {
				return err
			}
			defer rt.Close()

			if !rt.Session.IsAuthenticated() {
				return fmt.Errorf("not signed in; run storefront login first")
			}
			if empty {
				if err := rt.Client.ClearCart(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Remote cart cleared")
				return nil
			}
			cart, err := rt.Client.GetCart(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE")
			for _, it := range cart.Items {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n", it.ID, it.Name, it.Quantity, it.Price)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&empty, "clear", false, "empty the remote cart")
	return cmd
}
