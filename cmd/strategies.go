package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stadt-karlsruhe/geo-assigner/internal/assign"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available conflict resolution strategies",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range assign.StrategyNames() {
			fmt.Println(name)
		}
	},
}

func init() { rootCmd.AddCommand(strategiesCmd) }
