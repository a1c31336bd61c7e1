package xperteleven

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foxsportsgoon/goonbot/internal/domain/rawdata"
	"github.com/foxsportsgoon/goonbot/internal/usecase"
)

const loginPageHTML = `<html><body><form>
<input type="hidden" id="__VIEWSTATE" name="__VIEWSTATE" value="vs-token" />
<input type="hidden" id="__VIEWSTATEGENERATOR" name="__VIEWSTATEGENERATOR" value="vsg-token" />
<input type="hidden" id="__EVENTVALIDATION" name="__EVENTVALIDATION" value="ev-token" />
</form></body></html>`

type memArchive struct {
	mu       sync.Mutex
	payloads []rawdata.Payload
}

func (a *memArchive) Upsert(_ context.Context, p rawdata.Payload) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.payloads = append(a.payloads, p)
	return nil
}

func (a *memArchive) Latest(context.Context, string, string) (rawdata.Payload, bool, error) {
	return rawdata.Payload{}, false, nil
}

func loginTestServer(t *testing.T, postBody string) (*httptest.Server, *url.Values) {
	t.Helper()
	var posted url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(loginPageHTML))
			return
		}
		require.NoError(t, r.ParseForm())
		posted = r.PostForm
		_, _ = w.Write([]byte(postBody))
	}))
	t.Cleanup(srv.Close)
	return srv, &posted
}

func TestLogin_Success(t *testing.T) {
	srv, posted := loginTestServer(t, `<html><body><a href="#">Logout</a></body></html>`)

	client := NewClient(ClientConfig{
		BaseURL:  srv.URL,
		Username: "goon",
		Password: "hunter2",
	})

	session, err := client.Login(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)

	require.Equal(t, "vs-token", posted.Get(fieldViewState))
	require.Equal(t, "vsg-token", posted.Get(fieldViewStateGen))
	require.Equal(t, "ev-token", posted.Get(fieldEventValidation))
	require.Equal(t, "goon", posted.Get(fieldUsername))
	require.Equal(t, "hunter2", posted.Get(fieldPassword))
}

func TestLogin_BadCredentials(t *testing.T) {
	srv, _ := loginTestServer(t, `<html><body>Wrong username or password</body></html>`)

	client := NewClient(ClientConfig{BaseURL: srv.URL, Username: "goon", Password: "wrong"})

	_, err := client.Login(context.Background())
	require.ErrorIs(t, err, usecase.ErrLoginFailed)
}

func TestLogin_MissingHiddenFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><form></form></body></html>`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL})

	_, err := client.Login(context.Background())
	require.ErrorIs(t, err, usecase.ErrLoginFailed)
	require.Contains(t, err.Error(), fieldViewState)
}

func TestSessionMatchPage_ArchivesFetchedBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(loginPageHTML))
			return
		}
		_, _ = w.Write([]byte("Logout"))
	})
	mux.HandleFunc("/gameDetails.aspx", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1234", r.URL.Query().Get("GameID"))
		_, _ = w.Write([]byte(matchPageHTML))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	archive := &memArchive{}
	client := NewClient(ClientConfig{BaseURL: srv.URL, Archive: archive})

	session, err := client.Login(context.Background())
	require.NoError(t, err)

	details, err := session.MatchPage(context.Background(), "1234")
	require.NoError(t, err)
	require.Equal(t, "Tigers FC", details.Record.HomeTeam)

	require.Len(t, archive.payloads, 1)
	payload := archive.payloads[0]
	require.Equal(t, "xperteleven", payload.Source)
	require.Equal(t, rawdata.KindMatchPage, payload.Kind)
	require.Equal(t, "1234", payload.Key)
	require.NotEmpty(t, payload.BodyHash)
}

func TestSessionFetch_NonOKStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(loginPageHTML))
			return
		}
		_, _ = w.Write([]byte("Logout"))
	})
	mux.HandleFunc("/gameDetails.aspx", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL})
	session, err := client.Login(context.Background())
	require.NoError(t, err)

	_, err = session.MatchPage(context.Background(), "1234")
	require.ErrorIs(t, err, usecase.ErrPageFetch)
}

func TestMatchPageURL(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "https://example.test/"})
	require.Equal(t, "https://example.test/gameDetails.aspx?GameID=42&dh=2", client.MatchPageURL("42"))
}
