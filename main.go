package main

import (
	"os"

	"github.com/lastmile-sim/courierenv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
