package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [query]",
	Short: "Show how a query would be classified",
	Long: `Runs the intent classifier on a query and prints the detected
visual intent. Useful for debugging why a question does or does not
come back with screenshots.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the intent as JSON")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	intent := assistantService.ClassifyIntent(args[0])

	if classifyJSON {
		return outputJSON(cmd, intent)
	}

	cmd.Printf("Intent: %s\n", intent.Type)
	if intent.IsNone() {
		cmd.Println("No visual intent detected; images would be skipped.")
		return nil
	}
	if intent.SpecificAction != "" {
		cmd.Printf("Action: %s\n", intent.SpecificAction)
	}
	if len(intent.PriorityTerms) > 0 {
		cmd.Printf("Priority terms: %s\n", strings.Join(intent.PriorityTerms, ", "))
	}
	if len(intent.VisualKeywords) > 0 {
		cmd.Printf("Visual keywords: %s\n", strings.Join(intent.VisualKeywords, ", "))
	}
	return nil
}
