package cmd

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var couriersAt int64

var couriersCmd = &cobra.Command{
	Use:   "couriers",
	Short: "List couriers whose wave covers a timestamp",
	RunE:  runCouriers,
}

func init() {
	couriersCmd.Flags().Int64Var(&couriersAt, "at", 0, "epoch seconds of the queried instant")
	if err := couriersCmd.MarkFlagRequired("at"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(couriersCmd)
}

func runCouriers(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	couriers, err := svc.Engine.ActiveCouriers(couriersAt)
	if err != nil {
		return err
	}
	for i := range couriers {
		n, err := svc.Engine.UnfulfilledOrders(couriers[i].OrderIDs, couriersAt)
		if err != nil {
			return err
		}
		couriers[i].UnfulfilledOrders = n
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(couriers)
}
