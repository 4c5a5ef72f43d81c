package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	imagesLimit    int
	imagesCategory string
	imagesJSON     bool
)

var imagesCmd = &cobra.Command{
	Use:   "images [query]",
	Short: "Find screenshots relevant to a query",
	Long: `Runs the tiered image search for a query and prints the matching
screenshots with their relevance scores. Queries without visual intent
return no results.`,
	Args: cobra.ExactArgs(1),
	RunE: runImages,
}

func init() {
	imagesCmd.Flags().IntVarP(&imagesLimit, "limit", "n", 3, "maximum number of images")
	imagesCmd.Flags().StringVar(&imagesCategory, "category", "", "restrict to one document category")
	imagesCmd.Flags().BoolVar(&imagesJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(imagesCmd)
}

func runImages(cmd *cobra.Command, args []string) error {
	if imageSearch == nil {
		return errors.New("image search not configured")
	}

	results, err := imageSearch.Rank(
		context.Background(), args[0], imagesCategory, imagesLimit)
	if err != nil {
		return fmt.Errorf("image search failed: %w", err)
	}

	if imagesJSON {
		return outputJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No matching screenshots.")
		return nil
	}

	cmd.Println("Screenshots:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.1f)\n", i+1, results[i].LocalFilename, results[i].Score)
		cmd.Printf("      From: %s\n", results[i].DocumentTitle)
		if results[i].AltText != "" {
			cmd.Printf("      Alt: %s\n", results[i].AltText)
		}
		cmd.Println()
	}
	return nil
}
