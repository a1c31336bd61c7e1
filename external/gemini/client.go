// Package gemini calls the Google generative-language API to turn match
// prompts into chat-sized summaries. Generation is best effort: any failure
// collapses to a fixed placeholder so the bot always has something to post.
package gemini

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
	"github.com/foxsportsgoon/goonbot/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	// FailedSummary is what readers see when generation breaks. The exact
	// text is load-bearing: downstream truncation and posting treat it as a
	// normal summary.
	FailedSummary = "[Failed to generate summary.]"

	maxResponseBytes = 1 << 20
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	Logger     *logging.Logger
	Circuit    resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}
	httpClient.Transport = otelhttp.NewTransport(httpClient.Transport)

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	var breaker *resilience.CircuitBreaker
	if cfg.Circuit.Enabled {
		circuit := resilience.NormalizeCircuitBreakerConfig(cfg.Circuit)
		breaker = resilience.NewCircuitBreaker(circuit.FailureThreshold, circuit.OpenTimeout, circuit.HalfOpenMaxReq)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		logger:     logger,
		breaker:    breaker,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize sends the prompt to the model and returns the first candidate's
// text. It never returns an error: failures are logged and replaced with
// FailedSummary.
func (c *Client) Summarize(ctx context.Context, prompt string) string {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.WarnContext(ctx, "gemini generation failed", "error", err)
		return FailedSummary
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return "", crerr.Wrap(err, "gemini circuit")
		}
	}

	text, err := c.doGenerate(ctx, prompt)
	if c.breaker != nil {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return text, err
}

func (c *Client) doGenerate(ctx context.Context, prompt string) (string, error) {
	body, err := sonic.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal generate request")
	}

	endpoint := c.baseURL + "/v1beta/models/" + c.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", crerr.Wrap(err, "create generate request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", crerr.Wrap(err, "post generate request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", crerr.Wrap(err, "read generate response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", crerr.Newf("generate status %d: %s", resp.StatusCode, truncateForLog(respBody))
	}

	var parsed generateResponse
	if err := sonic.Unmarshal(respBody, &parsed); err != nil {
		return "", crerr.Wrap(err, "decode generate response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", crerr.New("generate response has no candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", crerr.New("generate response candidate is empty")
	}
	return text, nil
}

func truncateForLog(body []byte) string {
	const limit = 256
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
