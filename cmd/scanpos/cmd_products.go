package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scanpos/internal/domain"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			products, err := a.catalog.Search(ctx, search)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BARCODE\tNAME\tPRICE\tSTOCK\tCATEGORY")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%s\n", p.Barcode, p.Name, float64(p.Price), int(p.Stock), p.Category)
			}
			return w.Flush()
		})
	},
}

var addProductCmd = &cobra.Command{
	Use:   "add-product",
	Short: "Create a product, or restock an existing barcode",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.ProductUpsertRequest{}
		req.Barcode, _ = cmd.Flags().GetString("barcode")
		req.Name, _ = cmd.Flags().GetString("name")
		req.Price, _ = cmd.Flags().GetFloat64("price")
		req.Stock, _ = cmd.Flags().GetInt("stock")
		req.Description, _ = cmd.Flags().GetString("description")
		req.Category, _ = cmd.Flags().GetString("category")
		req.Brand, _ = cmd.Flags().GetString("brand")
		req.Image, _ = cmd.Flags().GetString("image")

		if req.Barcode == "" || req.Name == "" {
			return fmt.Errorf("barcode and name are required")
		}
		if req.Price <= 0 || req.Stock < 0 {
			return fmt.Errorf("price must be positive and stock must not be negative")
		}

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			message, err := a.client.UpsertProduct(ctx, req)
			if err != nil {
				return err
			}
			if message == "" {
				message = "Product saved."
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		})
	},
}

func init() {
	productsCmd.Flags().StringP("search", "s", "", "filter by name or barcode substring")

	addProductCmd.Flags().String("barcode", "", "product barcode")
	addProductCmd.Flags().String("name", "", "product name")
	addProductCmd.Flags().Float64("price", 0, "unit price")
	addProductCmd.Flags().Int("stock", 0, "stock quantity")
	addProductCmd.Flags().String("description", "", "description")
	addProductCmd.Flags().String("category", "", "category")
	addProductCmd.Flags().String("brand", "", "brand")
	addProductCmd.Flags().String("image", "", "image reference")
}
