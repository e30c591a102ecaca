package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rustref/internal/redirects"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "hello"

func signedWebhookRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/github/webhook", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hub-Signature", generateGithubHash(webhookSecret, []byte(payload)))
	req.Header.Set("X-GitHub-Delivery", "72d3162e-cc78-11e3-81ab-4c9367dc0958")
	return req
}

const masterPushPayload = `{
	"ref": "refs/heads/master",
	"commits": [{"id": "abc", "modified": ["redirects.toml"], "added": [], "removed": []}]
}`

func TestGenerateGithubHash(t *testing.T) {
	// Note: use a securely generated, random secret in production
	payload := "this is an example payload of what we want to sign."
	require.Equal(t,
		"sha1=604b8100cfe1aeaee448759c1450f080f41d41db",
		generateGithubHash("hello", []byte(payload)))
}

func TestWebhookSignature(t *testing.T) {
	con, _ := newTestController(t, testEntries)
	router := newTestRouter(con)

	t.Run("missing signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/github/webhook", bytes.NewBufferString(masterPushPayload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("signature mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/github/webhook", bytes.NewBufferString(masterPushPayload))
		req.Header.Set("X-Hub-Signature", "sha1=deadbeef")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no secret configured", func(t *testing.T) {
		unconfigured, _ := newTestController(t, testEntries)
		unconfigured.conf.GithubSecret = ""
		req := signedWebhookRequest(t, masterPushPayload)
		w := httptest.NewRecorder()
		newTestRouter(unconfigured).ServeHTTP(w, req)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestWebhookIgnoredPushes(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{
			name: "push to another branch",
			payload: `{"ref": "refs/heads/rocket",
				"commits": [{"id": "abc", "modified": ["redirects.toml"]}]}`,
		},
		{
			name: "redirects.toml untouched",
			payload: `{"ref": "refs/heads/master",
				"commits": [{"id": "abc", "modified": ["Readme.md"]}]}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// no Reload expected beyond the initial one
			con, _ := newTestController(t, testEntries)
			router := newTestRouter(con)

			req := signedWebhookRequest(t, tc.payload)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "ignoring")
		})
	}
}

func TestWebhookReload(t *testing.T) {
	con, src := newTestController(t, testEntries)
	router := newTestRouter(con)

	updated := []redirects.Entry{
		{Short: "nom", URL: "https://doc.rust-lang.org/nomicon/"},
	}
	src.EXPECT().Load(gomock.Any()).Return(updated, nil)

	req := signedWebhookRequest(t, masterPushPayload)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Redirects updated")

	// the new table is live
	r := httptest.NewRequest(http.MethodGet, "/redirect/nom", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "https://doc.rust-lang.org/nomicon/", w.Header().Get("Location"))
}

func TestWebhookReloadFailureKeepsServing(t *testing.T) {
	con, src := newTestController(t, testEntries)
	router := newTestRouter(con)

	src.EXPECT().Load(gomock.Any()).Return(nil, errors.New("download failed"))

	req := signedWebhookRequest(t, masterPushPayload)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// the prior table keeps serving
	r := httptest.NewRequest(http.MethodGet, "/redirect/std", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "https://doc.rust-lang.org/std", w.Header().Get("Location"))
}
