package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scanpos/internal/domain"
	"scanpos/internal/sale"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Propose the cart and finalize the sale into a bill",
	RunE: func(cmd *cobra.Command, args []string) error {
		details := sale.CustomerDetails{}
		details.Name, _ = cmd.Flags().GetString("name")
		details.Phone, _ = cmd.Flags().GetString("phone")
		details.PaymentMode, _ = cmd.Flags().GetString("payment")

		// Validate before proposing so a bad phone number does not leave an
		// orphaned pending cart on the server.
		if err := sale.ValidateCustomer(details); err != nil {
			return err
		}

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			cartID, err := a.finalizer.Propose(ctx)
			if err != nil {
				return err
			}

			bill, err := a.finalizer.Finalize(ctx, details)
			if err != nil {
				return fmt.Errorf("finalize sale (cart %s): %w", cartID, err)
			}

			printBill(cmd, bill)
			return nil
		})
	},
}

func printBill(cmd *cobra.Command, bill domain.Bill) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Repeat("=", 32))
	fmt.Fprintln(out, "            INVOICE")
	fmt.Fprintln(out, strings.Repeat("=", 32))
	fmt.Fprintf(out, "Customer: %s\n", bill.CustomerName)
	fmt.Fprintf(out, "Phone:    %s\n", bill.CustomerPhone)
	fmt.Fprintf(out, "Payment:  %s\n", bill.PaymentMode)
	fmt.Fprintf(out, "Date:     %s\n", bill.Date)
	fmt.Fprintln(out, strings.Repeat("-", 32))
	for _, item := range bill.Items {
		fmt.Fprintf(out, "%-24s%8.2f\n", item.Name, item.Price)
	}
	fmt.Fprintln(out, strings.Repeat("-", 32))
	fmt.Fprintf(out, "%-24s%8.2f\n", "TOTAL", float64(bill.TotalAmount))
	fmt.Fprintln(out, strings.Repeat("=", 32))
}

func init() {
	checkoutCmd.Flags().String("name", "", "customer name")
	checkoutCmd.Flags().String("phone", "", "customer phone")
	checkoutCmd.Flags().String("payment", "", "payment mode: Cash, Card or UPI")
	_ = checkoutCmd.MarkFlagRequired("name")
	_ = checkoutCmd.MarkFlagRequired("phone")
	_ = checkoutCmd.MarkFlagRequired("payment")
}
