package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/ai"
	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/config/file"
	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/files"
	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/storage/sqlite"
	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
	"github.com/chrona-labs/chrona-cli/internal/core/services"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// imagePathPrefix is where the HTTP API serves screenshot files.
const imagePathPrefix = "/images/"

// Bootstrap builds the production dependency graph: config store,
// SQLite knowledge base, rankers, optional LLM and the assistant.
// An unreachable or unconfigured LLM downgrades to template answers
// instead of failing startup.
func Bootstrap() (func(), error) {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	configStore = cfg
	appSettings = loadSettings(cfg)

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("knowledge base: %w", err)
	}
	docStore = store.DocumentStore()
	imageStore = store.ImageStore()
	logger.Debug("Knowledge base: %s", store.Path())

	scoring := domain.DefaultScoring()
	if v := cfg.GetFloat("scoring.image_threshold"); v > 0 {
		scoring.ImageThreshold = v
	}
	docRanker := services.NewDocumentRanker(docStore, scoring)
	imageRanker := services.NewImageRanker(
		imageStore, files.NewChecker(appSettings.ImagesDir), scoring)
	imageRanker.SetPathPrefix(imagePathPrefix)

	llm, err := ai.CreateLLMService(&appSettings.LLM)
	if err != nil {
		logger.Warn("LLM unavailable, using template answers: %v", err)
		llm = nil
	}

	assistantService = services.NewAssistantService(
		docRanker, imageRanker, docStore, imageStore, llm)
	docSearchService = docRanker
	imageSearch = imageRanker

	cleanup := func() {
		if llm != nil {
			_ = llm.Close()
		}
		_ = store.Close()
	}
	return cleanup, nil
}

// loadSettings reads settings from the config store, with environment
// variables overriding API keys so secrets can stay out of the file.
func loadSettings(cfg driven.ConfigStore) domain.AppSettings {
	settings := domain.DefaultAppSettings()

	settings.LLM.Provider = domain.AIProvider(cfg.GetString("llm.provider"))
	settings.LLM.Model = cfg.GetString("llm.model")
	settings.LLM.BaseURL = cfg.GetString("llm.base_url")
	settings.LLM.APIKey = cfg.GetString("llm.api_key")
	settings.LLM.MaxTokens = cfg.GetInt("llm.max_tokens")

	if key := apiKeyFromEnv(settings.LLM.Provider); key != "" {
		settings.LLM.APIKey = key
	}
	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	if addr := cfg.GetString("server.addr"); addr != "" {
		settings.Server.Addr = addr
	}
	if limit := cfg.GetFloat("server.rate_limit"); limit > 0 {
		settings.Server.RateLimit = limit
	}
	if burst := cfg.GetInt("server.rate_burst"); burst > 0 {
		settings.Server.RateBurst = burst
	}
	if origins := cfg.GetStringSlice("server.allowed_origins"); len(origins) > 0 {
		settings.Server.AllowedOrigins = origins
	}

	settings.ImagesDir = cfg.GetString("images.dir")
	if settings.ImagesDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			settings.ImagesDir = filepath.Join(home, ".chrona", "images")
		}
	}

	return settings
}

func apiKeyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case domain.AIProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}
