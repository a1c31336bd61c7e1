package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foxsportsgoon/goonbot/internal/domain/team"
	"github.com/foxsportsgoon/goonbot/internal/usecase"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *recordingSender) Send(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, text)
	return nil
}

func (s *recordingSender) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

type staticGenerator struct{}

func (staticGenerator) Summarize(context.Context, string) string { return "summary" }

func newTestHandler(sender *recordingSender) *Handler {
	// Every session open fails, so the services exercise their apology
	// paths without a live scraping backend.
	opener := usecase.OpenerFunc(func(context.Context) (usecase.LeagueBrowser, error) {
		return nil, context.DeadlineExceeded
	})
	leagues := usecase.Leagues{
		Marquee:   usecase.League{Name: "Goondesliga", Key: "goondesliga", Label: "The Goondesliga 🏆", Lnr: 1},
		Secondary: usecase.League{Name: "Spoondesliga", Key: "spoondesliga", Label: "The Spoondesliga 🥄", Lnr: 2},
		StatsID:   460905,
	}
	aliases := team.NewAliasMap([]team.Profile{{Team: "Tigers FC", Aliases: []string{"tigers"}}})

	return NewHandler(
		usecase.NewRecapService(opener, sender, leagues, nil),
		usecase.NewHighlightService(opener, staticGenerator{}, sender, aliases, leagues, nil),
		usecase.NewScheduleService(opener, sender, leagues, nil),
		usecase.NewPreviewService(opener, staticGenerator{}, sender, aliases, leagues, nil),
		usecase.NewLeaderboardService(opener, sender, leagues, nil),
		nil,
	)
}

func TestIndex(t *testing.T) {
	handler := newTestHandler(&recordingSender{})

	rec := httptest.NewRecorder()
	handler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Taycan A. Schitt is alive!", rec.Body.String())
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(&recordingSender{})

	rec := httptest.NewRecorder()
	handler.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWebhook_MalformedBody(t *testing.T) {
	handler := newTestHandler(&recordingSender{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json"))
	handler.Webhook(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No data received", rec.Body.String())
}

func TestWebhook_InvalidSenderType(t *testing.T) {
	handler := newTestHandler(&recordingSender{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"text":"hi","sender_type":"martian"}`))
	handler.Webhook(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid payload", rec.Body.String())
}

func TestWebhook_IgnoresBotSenders(t *testing.T) {
	sender := &recordingSender{}
	handler := newTestHandler(sender)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"text":"@taycan recap goondesliga","sender_type":"bot"}`))
	handler.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Ignoring bot message", rec.Body.String())
	require.Empty(t, sender.messages())
}

func TestWebhook_UnrecognizedTextIsAcked(t *testing.T) {
	sender := &recordingSender{}
	handler := newTestHandler(sender)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"text":"nice goal lads","sender_type":"user"}`))
	handler.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Empty(t, sender.messages())
}

func TestWebhook_DispatchesTVSchedule(t *testing.T) {
	sender := &recordingSender{}
	handler := newTestHandler(sender)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"text":"@taycan what's on fsg tv","sender_type":"user"}`))
	handler.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	got := sender.messages()
	require.Len(t, got, 2)
	require.Contains(t, got[0], "what's coming up on FoxSportsGoon")
	require.Equal(t, "⚠️ I couldn't log in to Xpert Eleven.", got[1])
}

func TestWebhook_DispatchesLeagueRecap(t *testing.T) {
	sender := &recordingSender{}
	handler := newTestHandler(sender)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"text":"@taycan recap the spoondesliga","sender_type":"user"}`))
	handler.Webhook(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	got := sender.messages()
	require.Len(t, got, 2)
	require.Contains(t, got[0], "Spoondesliga")
	require.Equal(t, "⚠️ Failed to log in to Xpert Eleven to fetch match data.", got[1])
}

func TestManualTV(t *testing.T) {
	sender := &recordingSender{}
	handler := newTestHandler(sender)

	rec := httptest.NewRecorder()
	handler.ManualTV(rec, httptest.NewRequest(http.MethodPost, "/tv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	// Manual trigger skips the chat intro and reports the login failure
	// in its terser form.
	got := sender.messages()
	require.Equal(t, []string{"⚠️ Couldn't log in to X11"}, got)
}

func TestRouter_Routes(t *testing.T) {
	handler := newTestHandler(&recordingSender{})
	server := httptest.NewServer(NewRouter(handler, nil))
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(server.URL + "/webhook")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode)
}
