// Package identity resolves Garmin user ids to internal account ids.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoMapping indicates the identity service answered without a mapping for
// the requested vendor id.
var ErrNoMapping = errors.New("no internal user id mapped for vendor id")

// Resolver looks up the internal user id for a vendor user id.
type Resolver interface {
	Resolve(ctx context.Context, vendorUserID string) (string, error)
}

// HTTPResolver queries the identity-mapping endpoint over HTTP.
type HTTPResolver struct {
	endpoint string
	client   *http.Client
}

// NewHTTPResolver builds a resolver against the given endpoint URL.
func NewHTTPResolver(endpoint string) *HTTPResolver {
	return &HTTPResolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupResponse struct {
	UserIDs string `json:"user_ids"`
}

// Resolve fetches the candidate internal ids for a vendor user. The response
// carries a comma-separated list; the first candidate wins and extra
// candidates are ignored.
func (r *HTTPResolver) Resolve(ctx context.Context, vendorUserID string) (string, error) {
	query := url.Values{}
	query.Set("partner", "garmin")
	query.Set("partner_user_ids", vendorUserID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("identity lookup: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity lookup: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("identity lookup: reading body: %w", err)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("identity lookup: unparsable body: %w", err)
	}
	if parsed.UserIDs == "" {
		return "", ErrNoMapping
	}

	return strings.Split(parsed.UserIDs, ",")[0], nil
}
