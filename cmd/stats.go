/*
Copyright © 2025 mk3s
*/
package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hcrm/internal/sysinfo"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a quick CPU/RAM summary without rendering a card",
	RunE: func(cmd *cobra.Command, args []string) error {
		source := sysinfo.HostSource()
		stats, err := sysinfo.NewSampler(source).Sample(cmd.Context())
		if err != nil {
			return fmt.Errorf("❌ Failed to sample system stats: %w", err)
		}

		total, free, err := source.Memory(cmd.Context())
		if err != nil {
			return fmt.Errorf("❌ Failed to fetch memory totals: %w", err)
		}

		color.Cyan("🖥️  %s", stats.CPUModel)
		color.Cyan("📟 %s", stats.OS)
		fmt.Printf("CPU: %s%%\n", stats.CPUPercent)
		fmt.Printf("RAM: %s%% (%s free of %s)\n",
			stats.RAMPercent, humanize.IBytes(free), humanize.IBytes(total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
