// Package cli implements the chrona command line interface. Commands
// talk to the core exclusively through driving ports; production
// wiring happens in Bootstrap.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driving"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

// Services commands depend on. Set by Bootstrap in production and
// replaced with fakes in tests.
var (
	assistantService driving.Assistant
	docSearchService driving.DocumentSearch
	imageSearch      driving.ImageSearch
	docStore         driven.DocumentStore
	imageStore       driven.ImageStore
	configStore      driven.ConfigStore
	appSettings      = domain.DefaultAppSettings()
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "chrona",
	Short: "Chrona support assistant",
	Long: `Chrona answers help-centre questions from a local knowledge base of
scraped documentation, with optional screenshots and an optional LLM
for natural-language answers.

Without a configured LLM the assistant serves deterministic template
answers grounded on the same ranked documents.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
