package cmd

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var stateAt int64

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Reconstruct the full system state at a timestamp",
	RunE:  runState,
}

func init() {
	stateCmd.Flags().Int64Var(&stateAt, "at", 0, "epoch seconds of the queried instant")
	if err := stateCmd.MarkFlagRequired("at"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	st, err := svc.Engine.ConstructState(stateAt)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}
