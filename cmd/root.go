/*
Copyright © 2025 mk3s
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hcrm",
	Short: "Render a host status card with CPU/RAM, lunar date and a hitokoto quote",
	Long: `hcrm samples the host's CPU and RAM, fetches a hitokoto quote and
composites everything onto a styled card image with embedded fonts.

Two render backends are available: a headless-browser screenshot (dom)
and a fully in-process vector rasterizer (vector).`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("🖼️ hcrm is ready... Use --help to see available commands.")
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}
