package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/llm"
	"github.com/spf13/viper"
)

// LoadLLMConfig builds the oracle client configuration from Viper. The API
// key falls back to ANTHROPIC_API_KEY.
func LoadLLMConfig() (llm.Config, error) {
	if provider := viper.GetString("llm.provider"); provider != "" && provider != "anthropic" {
		return llm.Config{}, fmt.Errorf("%w: unsupported LLM provider: %s", common.ErrInvalidConfig, provider)
	}

	config := llm.Config{
		APIKey:              viper.GetString("llm.api_key"),
		ExtractionModel:     viper.GetString("llm.extraction_model"),
		CategorizationModel: viper.GetString("llm.model"),
		MaxRetries:          viper.GetInt("llm.max_retries"),
		RetryDelay:          viper.GetDuration("llm.retry_delay"),
		CacheTTL:            viper.GetDuration("llm.cache_ttl"),
		RateLimit:           viper.GetInt("llm.rate_limit"),
		MaxTokens:           viper.GetInt64("llm.max_tokens"),
		ExtractionTemp:      viper.GetFloat64("llm.extraction_temperature"),
		CategorizationTemp:  viper.GetFloat64("llm.temperature"),
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if config.APIKey == "" {
		return llm.Config{}, fmt.Errorf("%w: anthropic API key not found in config or ANTHROPIC_API_KEY environment variable", common.ErrMissingConfig)
	}

	// Set defaults if not specified
	if config.ExtractionModel == "" {
		config.ExtractionModel = config.CategorizationModel
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 5 * time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}
	if config.RateLimit == 0 {
		config.RateLimit = llm.DefaultRateLimit
	}

	if config.MaxRetries < 0 || config.RateLimit < 0 || config.MaxTokens < 0 {
		return llm.Config{}, fmt.Errorf("%w: llm retries, rate limit and max tokens cannot be negative", common.ErrInvalidConfig)
	}

	return config, nil
}
