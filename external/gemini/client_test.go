package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
)

func TestSummarize_ReturnsCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		require.Equal(t, "secret-key", r.Header.Get("X-Goog-Api-Key"))

		var req generateRequest
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Equal(t, "Summarize this match.", req.Contents[0].Parts[0].Text)

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  A thrilling draw.  "}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "secret-key"})

	require.Equal(t, "A thrilling draw.", client.Summarize(context.Background(), "Summarize this match."))
}

func TestSummarize_FailuresCollapseToPlaceholder(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":`))
			},
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			name: "blank candidate",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			t.Cleanup(srv.Close)

			client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"})
			require.Equal(t, FailedSummary, client.Summarize(context.Background(), "prompt"))
		})
	}
}
