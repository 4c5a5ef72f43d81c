package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

var (
	askRole     string
	askModule   string
	askNoImages bool
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the support assistant a question",
	Long: `Answers a question from the local knowledge base.
The response is grounded on ranked documentation pages and may include
screenshots when the question asks for visual guidance.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askRole, "role", "", "user role (employee, manager, admin, project_manager)")
	askCmd.Flags().StringVar(&askModule, "module", "", "product module the question concerns")
	askCmd.Flags().BoolVar(&askNoImages, "no-images", false, "suppress screenshots in the answer")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	query := domain.SupportQuery{
		Query:         args[0],
		UserRole:      askRole,
		ProductModule: askModule,
		SkipImages:    askNoImages,
	}

	resp, err := assistantService.Answer(context.Background(), query)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputJSON(cmd, resp)
	}
	return outputAnswer(cmd, resp)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswer(cmd *cobra.Command, resp *domain.SupportResponse) error {
	cmd.Println(resp.Response)
	cmd.Println()
	cmd.Printf("Confidence: %.2f\n", resp.Confidence)

	if len(resp.RelevantDocs) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i := range resp.RelevantDocs {
			cmd.Printf("  [%d] %s (%.1f)\n", i+1, resp.RelevantDocs[i].Title, resp.RelevantDocs[i].Score)
			cmd.Printf("      %s\n", resp.RelevantDocs[i].URL)
		}
	}

	if len(resp.SuggestedActions) > 0 {
		cmd.Println()
		cmd.Println("Suggested actions:")
		for _, action := range resp.SuggestedActions {
			cmd.Printf("  - %s\n", action)
		}
	}

	if len(resp.Images) > 0 {
		cmd.Println()
		cmd.Println("Screenshots:")
		for i := range resp.Images {
			cmd.Printf("  [%d] %s (%s)\n", i+1, resp.Images[i].LocalFilename, resp.Images[i].DocumentTitle)
		}
	}

	if resp.EscalationNeeded {
		cmd.Println()
		cmd.Println("This question may need a human agent. Consider contacting support.")
	}

	return nil
}
