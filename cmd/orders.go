package cmd

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	ordersFrom int64
	ordersTo   int64
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders dispatched in a time window",
	RunE:  runOrders,
}

func init() {
	ordersCmd.Flags().Int64Var(&ordersFrom, "from", 0, "window start, epoch seconds (inclusive)")
	ordersCmd.Flags().Int64Var(&ordersTo, "to", 0, "window end, epoch seconds (exclusive)")
	for _, f := range []string{"from", "to"} {
		if err := ordersCmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(ordersCmd)
}

func runOrders(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	orders, err := svc.Engine.OrdersInWindow(ordersFrom, ordersTo)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(orders)
}
