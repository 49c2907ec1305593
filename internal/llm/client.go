package llm

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Veraticus/work-order-flow/internal/common"
	"github.com/Veraticus/work-order-flow/internal/model"
	"github.com/Veraticus/work-order-flow/internal/service"
)

// Messager is the subset of the Anthropic SDK used here.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Config holds configuration for the Anthropic client.
type Config struct {
	APIKey              string
	ExtractionModel     string
	CategorizationModel string
	MaxRetries          int
	RetryDelay          time.Duration
	MaxRetryDelay       time.Duration
	CacheTTL            time.Duration
	RateLimit           int
	MaxTokens           int64
	ExtractionTemp      float64
	CategorizationTemp  float64
}

// Defaults for unset Config fields.
const (
	DefaultExtractionModel     = string(anthropic.ModelClaudeSonnet4_20250514)
	DefaultCategorizationModel = string(anthropic.ModelClaudeSonnet4_20250514)
	DefaultMaxTokens           = 8192
	DefaultRateLimit           = 50
)

// Client reads work orders and categorizes descriptions.
type Client struct {
	messages  Messager
	cache     *responseCache
	limiter   *rateLimiter
	logger    *slog.Logger
	retryOpts service.RetryOptions
	cfg       Config
}

// NewClient creates a client backed by the Anthropic SDK.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", common.ErrMissingConfig)
	}
	c := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return NewClientWithMessager(&c.Messages, cfg, logger), nil
}

// NewClientWithMessager creates a client around an existing Messager.
func NewClientWithMessager(m Messager, cfg Config, logger *slog.Logger) *Client {
	if cfg.ExtractionModel == "" {
		cfg.ExtractionModel = DefaultExtractionModel
	}
	if cfg.CategorizationModel == "" {
		cfg.CategorizationModel = DefaultCategorizationModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     cfg.MaxRetryDelay,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = 5 * time.Second
	}
	if retryOpts.MaxDelay == 0 {
		retryOpts.MaxDelay = time.Minute
	}

	return &Client{
		messages:  m,
		cfg:       cfg,
		logger:    logger,
		retryOpts: retryOpts,
		cache:     newResponseCache(cfg.CacheTTL),
		limiter:   newRateLimiter(cfg.RateLimit),
	}
}

// ExtractFields reads a scanned work order and returns its numbered field
// text.
func (c *Client) ExtractFields(ctx context.Context, doc model.Document) (string, error) {
	block, err := documentBlock(doc)
	if err != nil {
		return "", err
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.ExtractionModel),
		MaxTokens:   c.cfg.MaxTokens,
		System:      []anthropic.TextBlockParam{{Text: extractionPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(block)},
		Temperature: anthropic.Float(c.cfg.ExtractionTemp),
	}

	text, err := c.complete(ctx, params)
	if err != nil {
		return "", fmt.Errorf("extract fields from %s: %w", doc.Name, err)
	}
	c.logger.Debug("fields extracted", "document", doc.Name, "chars", len(text))
	return text, nil
}

// Categorize sends a categorization prompt and returns the raw response.
// Identical prompts are answered from the cache.
func (c *Client) Categorize(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(c.cfg.CategorizationModel, prompt)
	if text, ok := c.cache.get(key); ok {
		c.logger.Debug("categorization cache hit")
		return text, nil
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.CategorizationModel),
		MaxTokens:   2048,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(c.cfg.CategorizationTemp),
	}

	text, err := c.complete(ctx, params)
	if err != nil {
		return "", fmt.Errorf("categorize: %w", err)
	}
	c.cache.set(key, text)
	return text, nil
}

// Close stops background goroutines.
func (c *Client) Close() error {
	c.cache.Close()
	c.limiter.Close()
	return nil
}

func (c *Client) complete(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	var text string
	err := common.WithRetry(ctx, func() error {
		if err := c.limiter.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := c.messages.New(ctx, params)
		if err != nil {
			return classifyError(err)
		}

		var sb strings.Builder
		for _, b := range resp.Content {
			if b.Type == "text" {
				sb.WriteString(b.Text)
			}
		}
		text = sb.String()
		if strings.TrimSpace(text) == "" {
			return &common.RetryableError{Err: errors.New("empty response"), Retryable: true}
		}
		return nil
	}, c.retryOpts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrOracleFailed, err)
	}
	return text, nil
}

// classifyError maps SDK errors onto the retry policy. Rate limits and server
// errors are retried; other API errors are not.
func classifyError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return &common.RetryableError{Err: err, Retryable: true}
		default:
			return &common.RetryableError{Err: err, Retryable: false}
		}
	}
	if errors.Is(err, context.Canceled) {
		return &common.RetryableError{Err: err, Retryable: false}
	}
	return &common.RetryableError{Err: err, Retryable: true}
}

func documentBlock(doc model.Document) (anthropic.ContentBlockParamUnion, error) {
	if len(doc.Data) == 0 {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("%w: %s is empty", common.ErrInvalidDocument, doc.Name)
	}
	data := base64.StdEncoding.EncodeToString(doc.Data)

	switch mediaType := doc.MediaType(); mediaType {
	case model.MediaTypePDF:
		return anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: data}), nil
	case model.MediaTypeJPEG, model.MediaTypePNG:
		return anthropic.NewImageBlockBase64(mediaType, data), nil
	default:
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("%w: unsupported media type %q for %s",
			common.ErrInvalidDocument, mediaType, doc.Name)
	}
}

func cacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
