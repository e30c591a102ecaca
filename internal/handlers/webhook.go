package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// commit is the subset of a GitHub push-event commit the webhook inspects.
type commit struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

// pushEvent is the subset of GitHub's push event payload the webhook inspects.
type pushEvent struct {
	Ref     string   `json:"ref"`
	Before  string   `json:"before"`
	After   string   `json:"after"`
	Commits []commit `json:"commits"`
}

// redirectsConfigFile - the file in the configuration repository whose
// changes trigger a reload.
const redirectsConfigFile = "redirects.toml"

const masterRef = "refs/heads/master"

// fileTouched reports whether any commit in the push added or modified name.
func (p *pushEvent) fileTouched(name string) bool {
	for _, c := range p.Commits {
		for _, f := range c.Modified {
			if f == name {
				return true
			}
		}
		for _, f := range c.Added {
			if f == name {
				return true
			}
		}
	}
	return false
}

// generateGithubHash computes GitHub's X-Hub-Signature value: "sha1=" plus
// the hex HMAC-SHA1 of the payload under the shared secret.
func generateGithubHash(secret string, payload []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(payload)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

// validSignature compares the received signature in constant time.
func validSignature(secret string, payload []byte, signature string) bool {
	expected := generateGithubHash(secret, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// WebhookHandler reloads the redirect table when GitHub reports a push to
// master that touches redirects.toml. The request must carry a valid
// X-Hub-Signature; everything else is answered with an explanatory message
// and no reload.
func (con *Controller) WebhookHandler() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if con.conf.GithubSecret == "" {
			http.Error(res, "webhook is not configured", http.StatusServiceUnavailable)
			return
		}

		body, err := io.ReadAll(req.Body)
		if err != nil {
			http.Error(res, "error reading request body", http.StatusInternalServerError)
			return
		}

		signature := req.Header.Get("X-Hub-Signature")
		if signature == "" {
			http.Error(res, "no signature", http.StatusForbidden)
			return
		}
		if !validSignature(con.conf.GithubSecret, body, signature) {
			con.sugar.Warnw("webhook signature mismatch")
			http.Error(res, "signature mismatch", http.StatusForbidden)
			return
		}

		if deliveryID, err := uuid.Parse(req.Header.Get("X-GitHub-Delivery")); err == nil {
			con.sugar.Infow("webhook delivery received", "delivery_id", deliveryID.String())
		}

		var push pushEvent
		if err := json.Unmarshal(body, &push); err != nil {
			http.Error(res, "error parsing push event", http.StatusInternalServerError)
			return
		}

		if push.Ref != masterRef {
			_, _ = res.Write([]byte("Event not on master branch, ignoring\n"))
			return
		}
		if !push.fileTouched(redirectsConfigFile) {
			_, _ = res.Write([]byte(redirectsConfigFile + " was not modified, ignoring\n"))
			return
		}

		if err := con.service.Reload(req.Context()); err != nil {
			http.Error(res, "error updating redirects", http.StatusInternalServerError)
			return
		}

		_, _ = res.Write([]byte("Redirects updated\n"))
	}
}
