package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/ai"
	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, HTTP API and image directory.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used for natural-language answers.

Without a configured provider the assistant serves deterministic
template answers.`,
	RunE: runSettingsLLM,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	llm := appSettings.LLM
	if llm.Provider == "" {
		cmd.Println("  Provider: (not set)")
	} else {
		cmd.Printf("  Provider: %s\n", llm.Provider.Description())
		cmd.Printf("  Model: %s\n", llm.Model)
		if llm.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", llm.BaseURL)
		}
		if llm.Provider.RequiresAPIKey() {
			if llm.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(llm.APIKey))
			} else {
				cmd.Printf("  API Key: (not set)\n")
			}
		}
	}
	status := "configured"
	if !llm.IsConfigured() {
		status = "not configured, using template answers"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Addr: %s\n", appSettings.Server.Addr)
	cmd.Printf("  Rate limit: %.1f req/s (burst %d)\n",
		appSettings.Server.RateLimit, appSettings.Server.RateBurst)
	cmd.Printf("  Allowed origins: %s\n", strings.Join(appSettings.Server.AllowedOrigins, ", "))
	cmd.Println()

	cmd.Println("[Images]")
	cmd.Printf("  Directory: %s\n", appSettings.ImagesDir)
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selected := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selected]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selected.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := configStore.Set("llm.provider", selected.String()); err != nil {
		return fmt.Errorf("failed to save provider: %w", err)
	}
	if err := configStore.Set("llm.model", model); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	if apiKey != "" {
		if err := configStore.Set("llm.api_key", apiKey); err != nil {
			return fmt.Errorf("failed to save API key: %w", err)
		}
	}

	appSettings.LLM.Provider = selected
	appSettings.LLM.Model = model
	if apiKey != "" {
		appSettings.LLM.APIKey = apiKey
	}

	// Validate the configuration by pinging the service.
	cmd.Print("Validating configuration... ")
	svc, err := ai.CreateAndValidateLLMService(&appSettings.LLM)
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	defer svc.Close() //nolint:errcheck // Close is best-effort here
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n", selected.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
