// Package main is the entry point for the quail-api server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quail-api",
	Short: "Quail Adventure game server",
	Long:  `quail-api runs the player state core: wallet and entitlement ledger, character progression, quest tracking, nest upgrades, and the world simulation loop.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
