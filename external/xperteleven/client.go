// Package xperteleven scrapes the Xpert Eleven league site: form login,
// match pages, standings tables, upcoming fixtures and stat leaderboards.
// The site is semi-structured ASP.NET markup; every selector lives in this
// package so schema drift stays a one-package fix.
package xperteleven

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
	"github.com/foxsportsgoon/goonbot/internal/platform/logging"
	"github.com/foxsportsgoon/goonbot/internal/usecase"
)

const (
	defaultBaseURL = "https://www.xperteleven.com"
	loginPath      = "/front_new3.aspx"
	sourceName     = "xperteleven"

	maxPageBytes = 4 << 20
)

// ASP.NET login form fields.
const (
	fieldViewState       = "__VIEWSTATE"
	fieldViewStateGen    = "__VIEWSTATEGENERATOR"
	fieldEventValidation = "__EVENTVALIDATION"
	fieldUsername        = "ctl00$cphMain$FrontControl$lwLogin$tbUsername"
	fieldPassword        = "ctl00$cphMain$FrontControl$lwLogin$tbPassword"
	fieldLoginButton     = "ctl00$cphMain$FrontControl$lwLogin$btnLogin"
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Username   string
	Password   string
	Timeout    time.Duration
	Logger     *logging.Logger
	Archive    rawdata.Repository
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *logging.Logger
	archive    rawdata.Repository
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

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		logger:     logger,
		archive:    cfg.Archive,
	}
}

// Session is one logged-in scraping session with its own cookie jar. The
// site keeps authentication in cookies, so every page fetched through the
// session stays logged in.
type Session struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	archive    rawdata.Repository
}

// Login performs the ASP.NET form login and returns a session on success.
// The hidden form fields are read from the login page first; their absence
// means the form changed under us. Success is detected the only way the site
// exposes it: a "Logout" link in the response body.
func (c *Client) Login(ctx context.Context) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, crerr.Wrap(err, "create cookie jar")
	}

	sessionClient := &http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: c.httpClient.Transport,
		Jar:       jar,
	}

	loginURL := c.baseURL + loginPath
	loginPage, err := fetchBody(ctx, sessionClient, loginURL)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "fetch login page"), usecase.ErrLoginFailed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(loginPage))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "parse login page"), usecase.ErrLoginFailed)
	}

	form := url.Values{}
	for _, hidden := range []string{fieldViewState, fieldViewStateGen, fieldEventValidation} {
		value, ok := doc.Find("input#" + hidden).Attr("value")
		if !ok {
			return nil, crerr.Wrapf(usecase.ErrLoginFailed, "login form field %s missing", hidden)
		}
		form.Set(hidden, value)
	}
	form.Set(fieldUsername, c.username)
	form.Set(fieldPassword, c.password)
	form.Set(fieldLoginButton, "Login")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, crerr.Wrap(err, "create login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := sessionClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "post login form"), usecase.ErrLoginFailed)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read login response"), usecase.ErrLoginFailed)
	}

	if !strings.Contains(string(body), "Logout") {
		return nil, crerr.Wrap(usecase.ErrLoginFailed, "no logout link after login post")
	}

	c.logger.InfoContext(ctx, "xperteleven login succeeded")

	return &Session{
		httpClient: sessionClient,
		baseURL:    c.baseURL,
		logger:     c.logger,
		archive:    c.archive,
	}, nil
}

// MatchPageURL builds the canonical match detail URL for a game id.
func (c *Client) MatchPageURL(gameID string) string {
	return matchPageURL(c.baseURL, gameID)
}

func matchPageURL(baseURL, gameID string) string {
	return baseURL + "/gameDetails.aspx?GameID=" + url.QueryEscape(gameID) + "&dh=2"
}

func (s *Session) fetchPage(ctx context.Context, kind, key, pageURL string) (string, error) {
	body, err := fetchBody(ctx, s.httpClient, pageURL)
	if err != nil {
		return "", err
	}

	if s.archive != nil {
		payload := rawdata.NewPayload(sourceName, kind, key, body, time.Now().UTC())
		if err := s.archive.Upsert(ctx, payload); err != nil {
			s.logger.WarnContext(ctx, "page archive upsert failed",
				"kind", kind,
				"key", key,
				"error", err,
			)
		}
	}

	return body, nil
}

func fetchBody(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", crerr.Wrapf(err, "create request for %s", pageURL)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "get %s", pageURL), usecase.ErrPageFetch)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", crerr.Wrapf(usecase.ErrPageFetch, "status %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "read %s", pageURL), usecase.ErrPageFetch)
	}

	return string(body), nil
}
