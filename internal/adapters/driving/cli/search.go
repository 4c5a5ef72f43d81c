package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchCategory string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the documentation knowledge base",
	Long: `Ranks documentation pages against the query and prints them by
relevance score. Use --category to pin the topic instead of letting
the ranker derive one from the query.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "pin the category hint")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if docSearchService == nil {
		return errors.New("search service not configured")
	}

	results, err := docSearchService.Rank(
		context.Background(), args[0], searchCategory, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.RankedDocument) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%.1f)\n", i+1, results[i].Title, results[i].Score)
		cmd.Printf("      %s · %s\n", results[i].Category, results[i].URL)
		if results[i].Content != "" {
			cmd.Printf("      %s\n", results[i].Content)
		}
		cmd.Println()
	}

	return nil
}
