// Package resolve converts operator-entered emails into the stable Slack
// user IDs the attendance matcher needs. The client never invents IDs;
// it sends raw emails and the server answers with a fully resolved
// directory or a per-record failure list.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Resolver turns an email into a workspace-scoped user ID.
type Resolver interface {
	ResolveEmail(ctx context.Context, botToken, email string) (string, error)
}

// ResolutionError reports which records could not be resolved. Details
// holds one line per failing record and must be surfaced verbatim.
type ResolutionError struct {
	Message string
	Details []string
}

func (e *ResolutionError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

const slackAPIBase = "https://slack.com/api"

// SlackResolver resolves emails through users.lookupByEmail with a
// workspace's own bot token.
type SlackResolver struct {
	httpClient *http.Client
	baseURL    string
}

func NewSlackResolver() *SlackResolver {
	return &SlackResolver{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    slackAPIBase,
	}
}

// NewSlackResolverWithBase is used by tests to point at a fake endpoint.
func NewSlackResolverWithBase(baseURL string) *SlackResolver {
	r := NewSlackResolver()
	r.baseURL = baseURL
	return r
}

type lookupResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (r *SlackResolver) ResolveEmail(ctx context.Context, botToken, email string) (string, error) {
	endpoint := fmt.Sprintf("%s/users.lookupByEmail?email=%s", r.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+botToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("slack lookup request failed")
		return "", err
	}
	defer resp.Body.Close()

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode slack response: %w", err)
	}
	if !body.OK {
		return "", fmt.Errorf("slack lookup failed: %s", body.Error)
	}
	return body.User.ID, nil
}
