// Package groupme posts bot messages to a GroupMe group through the bots
// API. GroupMe hard-caps message length, so every outgoing text is truncated
// before posting.
package groupme

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
)

const (
	defaultBaseURL = "https://api.groupme.com"
	postPath       = "/v3/bots/post"

	// MaxMessageLen is GroupMe's hard limit on message text.
	MaxMessageLen = 1000
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	BotID      string
	Timeout    time.Duration
	Logger     *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	botID      string
	logger     *logging.Logger
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
		httpClient.Timeout = 15 * time.Second
	}
	httpClient.Transport = otelhttp.NewTransport(httpClient.Transport)

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		botID:      cfg.BotID,
		logger:     logger,
	}
}

type botPost struct {
	BotID string `json:"bot_id"`
	Text  string `json:"text"`
}

// Truncate enforces the GroupMe length cap, replacing the tail of an
// overlong message with an ellipsis.
func Truncate(text string) string {
	if len(text) <= MaxMessageLen {
		return text
	}
	return text[:MaxMessageLen-3] + "..."
}

// Send posts one message as the bot. Overlong text is truncated, not
// rejected. GroupMe acknowledges bot posts with 202 Accepted.
func (c *Client) Send(ctx context.Context, text string) error {
	text = Truncate(text)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	post := botPost{BotID: c.botID, Text: text}
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(post); err != nil {
		return crerr.Wrap(err, "marshal bot post")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+postPath, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return crerr.Wrap(err, "create bot post request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Wrap(err, "post bot message")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return crerr.Newf("bot post status %d", resp.StatusCode)
	}

	c.logger.DebugContext(ctx, "groupme message sent", "chars", len(text))
	return nil
}
