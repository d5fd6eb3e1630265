package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scanpos/internal/domain"
)

var sellCmd = &cobra.Command{
	Use:   "sell <barcode>",
	Short: "Sell one unit of a product into the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		barcode := args[0]

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			products, err := a.catalog.Products(ctx)
			if err != nil {
				return err
			}
			var product *domain.Product
			for i := range products {
				if products[i].Barcode == barcode {
					product = &products[i]
					break
				}
			}
			if product == nil {
				return fmt.Errorf("no product found with barcode %s", barcode)
			}

			// The server decrements stock first; the cart line is only
			// appended once that succeeds.
			if err := a.client.Checkout(ctx, barcode); err != nil {
				return err
			}

			line := domain.CartLine{
				Barcode:     product.Barcode,
				Name:        product.Name,
				Price:       float64(product.Price),
				Description: product.Description,
			}
			if err := a.cart.Add(ctx, line); err != nil {
				return fmt.Errorf("save cart: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%.2f) to cart. Lines: %d, total: %.2f\n",
				product.Name, line.Price, len(a.cart.Lines(ctx)), a.cart.Total(ctx))
			return nil
		})
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			lines := a.cart.Lines(ctx)
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Your cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BARCODE\tNAME\tPRICE")
			for _, line := range lines {
				fmt.Fprintf(w, "%s\t%s\t%.2f\n", line.Barcode, line.Name, line.Price)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %.2f\n", a.cart.Total(ctx))
			return nil
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <barcode>",
	Short: "Remove every cart line with the given barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			removed, err := a.cart.Remove(ctx, args[0])
			if err != nil {
				return err
			}
			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching lines in cart.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d line(s). Total: %.2f\n", removed, a.cart.Total(ctx))
			return nil
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.cart.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		})
	},
}

func init() {
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}
