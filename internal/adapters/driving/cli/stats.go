package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	stats, err := assistantService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	if statsJSON {
		return outputJSON(cmd, stats)
	}

	cmd.Println("Knowledge Base")
	cmd.Println("==============")
	cmd.Printf("Documents: %d\n", stats.TotalDocuments)
	cmd.Printf("Images:    %d\n", stats.TotalImages)

	if len(stats.Categories) > 0 {
		cmd.Println()
		cmd.Println("By category:")
		categories := make([]string, 0, len(stats.Categories))
		for c := range stats.Categories {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			cmd.Printf("  %-20s %d\n", c, stats.Categories[c])
		}
	}
	return nil
}
