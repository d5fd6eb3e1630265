package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the sales report for the trailing days window",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			rep, err := a.reports.Report(ctx, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total sales: %.2f\n\n", float64(rep.TotalAmount))

			if len(rep.Top5Products) > 0 {
				fmt.Fprintln(out, "Top sellers:")
				for _, p := range rep.Top5Products {
					fmt.Fprintf(out, "  %-20s %d sold\n", p.Name, int(p.SalesCount))
				}
			}
			if len(rep.Least5Products) > 0 {
				fmt.Fprintln(out, "Least sellers:")
				for _, p := range rep.Least5Products {
					fmt.Fprintf(out, "  %-20s %d sold\n", p.Name, int(p.SalesCount))
				}
			}
			if len(rep.SellChartData) > 0 {
				fmt.Fprintln(out, "Sales by product:")
				for _, point := range rep.SellChartData {
					fmt.Fprintf(out, "  %-20s %.2f\n", point.Name, float64(point.Sales))
				}
			}
			return nil
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed sales grouped per cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			carts, err := a.reports.History(ctx, days)
			if err != nil {
				return err
			}
			if len(carts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sales in this window.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CART\tCUSTOMER\tPHONE\tITEMS\tTOTAL\tPAYMENT\tDATE")
			for _, c := range carts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\t%s\n",
					c.CartID, c.Customer, c.Phone, len(c.Items), c.Total, c.PaymentMode, c.Date)
			}
			return w.Flush()
		})
	},
}

func init() {
	reportCmd.Flags().Int("days", 30, "trailing window in days")
	historyCmd.Flags().Int("days", 30, "trailing window in days")
}
