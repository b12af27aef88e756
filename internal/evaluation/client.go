package evaluation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/compass/internal/assessment"
	"github.com/abhisek/compass/internal/llm"
	"github.com/abhisek/compass/internal/logger"
	"github.com/abhisek/compass/internal/store"
)

// ClientConfig holds request parameters for the evaluator call.
type ClientConfig struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single Evaluate call. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// DefaultClientConfig returns the settings used for scoring.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		MaxTokens:   3000,
		Temperature: 0,
		Timeout:     60 * time.Second,
	}
}

// Client sends a built prompt to the LLM and returns the validated result.
// It never touches session state.
type Client struct {
	provider  llm.Provider
	cfg       ClientConfig
	names     []string
	configErr error
	logger    *zap.Logger
}

// NewClient creates a Client on top of an existing provider.
func NewClient(provider llm.Provider, cfg ClientConfig) *Client {
	return &Client{
		provider: provider,
		cfg:      cfg,
		names:    assessment.CompetencyNames(),
		logger:   zap.NewNop(),
	}
}

// Open creates a Client from LLM configuration. A configuration problem does
// not fail Open: the returned Client reports it as *ConfigError from every
// Evaluate call, so interviews can proceed without a credential.
// repo and log may be nil.
func Open(ctx context.Context, llmCfg llm.Config, cfg ClientConfig, repo store.EventRepo, log *zap.Logger) *Client {
	log = logger.WithFields(log)
	if llmCfg.Timeout > 0 {
		cfg.Timeout = llmCfg.Timeout
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo, log)
	if err != nil {
		log.Warn("evaluation disabled", zap.String("provider", llmCfg.Provider), zap.Error(err))
		return &Client{cfg: cfg, names: assessment.CompetencyNames(), configErr: err, logger: log}
	}

	if m, ok := provider.(*llm.MockProvider); ok && m.Fallback == nil {
		m.Fallback = offlineReply
	}

	c := NewClient(provider, cfg)
	c.logger = logger.WithFields(log, zap.String("model", provider.ModelID()))
	return c
}

// offlineReply answers the mock provider with a mid-range score for every
// competency, so the full flow can be exercised without a credential.
func offlineReply(llm.Request) llm.MockResponse {
	r := Result{}
	for _, n := range assessment.CompetencyNames() {
		r.Competencies = append(r.Competencies, CompetencyScore{
			Competency:    n,
			Score:         3,
			Justification: "Scored offline by the mock provider; no model reviewed the answers.",
		})
	}
	raw, _ := json.Marshal(r)
	return llm.MockResponse{Content: raw}
}

// Err reports the configuration problem that prevents evaluation, if any.
func (c *Client) Err() error {
	if c.configErr != nil {
		return &ConfigError{Err: c.configErr}
	}
	return nil
}

// ModelID returns the model evaluations are sent to, or "" when the client
// is not configured.
func (c *Client) ModelID() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.ModelID()
}

// Evaluate sends prompt as the single user message and returns the parsed
// result. Failures are *Error, except a missing configuration which is
// *ConfigError and is reported before any request is made.
func (c *Client) Evaluate(ctx context.Context, prompt string) (*Result, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "evaluation")
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      SystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      EvaluationSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		var missing *llm.ErrMissingCredential
		if errors.As(err, &missing) {
			return nil, &ConfigError{Err: err}
		}
		return nil, &Error{Cause: describe(err), Err: err}
	}

	result, err := ParseResult(resp.Content, c.names)
	if err != nil {
		c.logger.Warn("rejected evaluation reply", zap.Error(err))
		return nil, &Error{Cause: "the evaluator reply did not match the competency taxonomy", Err: err}
	}
	return result, nil
}

// describe maps a provider error to a message for the user.
func describe(err error) string {
	var (
		rl      *llm.ErrRateLimit
		auth    *llm.ErrAuth
		invalid *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
		unavail *llm.ErrProviderUnavailable
		badReq  *llm.ErrBadRequest
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "the evaluation service did not respond in time"
	case errors.Is(err, context.Canceled):
		return "the evaluation was cancelled"
	case errors.As(err, &rl):
		return "the evaluation service is rate limiting requests"
	case errors.As(err, &auth):
		return "the evaluation service rejected the API key"
	case errors.As(err, &invalid):
		return "the evaluation service returned a malformed reply"
	case errors.As(err, &maxTok):
		return "the evaluation reply was cut off before it was complete"
	case errors.As(err, &badReq):
		return "the evaluation service rejected the request"
	case errors.As(err, &unavail):
		return "the evaluation service is unavailable"
	default:
		return "the evaluation request failed"
	}
}
