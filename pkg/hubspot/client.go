// Package hubspot provides token-authenticated access to the HubSpot CRM v3 API.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/account-brief/internal/apperr"
)

const defaultBaseURL = "https://api.hubapi.com"

// CRM object types used by the pusher.
const (
	ObjectCompanies = "companies"
	ObjectContacts  = "contacts"
	ObjectNotes     = "notes"
)

// Client defines the HubSpot API operations used by the pusher.
type Client interface {
	SearchObjects(ctx context.Context, objectType string, req SearchRequest) (*SearchResponse, error)
	CreateObject(ctx context.Context, objectType string, properties map[string]any) (*Object, error)
	UpdateObject(ctx context.Context, objectType, id string, properties map[string]any) (*Object, error)
	Associate(ctx context.Context, fromType, fromID, toType, toID, associationType string) error
	PortalID(ctx context.Context) (string, error)
}

// Object is a CRM record as returned by the objects API.
type Object struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Archived   bool           `json:"archived"`
}

// Filter is a single property filter in a search request.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

// FilterGroup ANDs its filters; groups are ORed together.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// SearchRequest is the body for POST /crm/v3/objects/{type}/search.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties,omitempty"`
	Limit        int           `json:"limit,omitempty"`
}

// SearchResponse is the result of an object search.
type SearchResponse struct {
	Total   int      `json:"total"`
	Results []Object `json:"results"`
}

// Option configures the HubSpot client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets a per-second rate limit for API calls.
// A burst equal to the integer portion of rps is allowed.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		}
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a HubSpot client authenticated with a private-app access token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wait blocks until the rate limiter allows one event, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// do sends one request and decodes a non-empty JSON response into out.
// Empty response bodies (e.g. association PUTs) leave out untouched.
func (c *httpClient) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "hubspot: rate limit")
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return eris.Wrap(err, "hubspot: marshal request")
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return eris.Wrap(err, "hubspot: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: %s %s", method, path))
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "hubspot: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperr.NewProviderError("HubSpot", resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "hubspot: unmarshal response")
	}
	return nil
}

func (c *httpClient) SearchObjects(ctx context.Context, objectType string, req SearchRequest) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.do(ctx, http.MethodPost, "/crm/v3/objects/"+objectType+"/search", req, &out); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hubspot: search %s", objectType))
	}
	return &out, nil
}

func (c *httpClient) CreateObject(ctx context.Context, objectType string, properties map[string]any) (*Object, error) {
	var out Object
	in := map[string]any{"properties": properties}
	if err := c.do(ctx, http.MethodPost, "/crm/v3/objects/"+objectType, in, &out); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hubspot: create %s", objectType))
	}
	return &out, nil
}

func (c *httpClient) UpdateObject(ctx context.Context, objectType, id string, properties map[string]any) (*Object, error) {
	var out Object
	in := map[string]any{"properties": properties}
	if err := c.do(ctx, http.MethodPatch, "/crm/v3/objects/"+objectType+"/"+id, in, &out); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hubspot: update %s %s", objectType, id))
	}
	if out.ID == "" {
		out.ID = id
	}
	return &out, nil
}

func (c *httpClient) Associate(ctx context.Context, fromType, fromID, toType, toID, associationType string) error {
	path := fmt.Sprintf("/crm/v3/objects/%s/%s/associations/%s/%s/%s", fromType, fromID, toType, toID, associationType)
	if err := c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: associate %s %s with %s %s", fromType, fromID, toType, toID))
	}
	return nil
}

type portalInfo struct {
	PortalID json.Number `json:"portalId"`
}

// PortalID resolves the account's portal (hub) ID, trying the account-info
// endpoint first and the legacy integrations endpoint second.
func (c *httpClient) PortalID(ctx context.Context) (string, error) {
	var info portalInfo
	firstErr := c.do(ctx, http.MethodGet, "/account-info/v3/details", nil, &info)
	if firstErr == nil && info.PortalID != "" {
		return info.PortalID.String(), nil
	}

	info = portalInfo{}
	if err := c.do(ctx, http.MethodGet, "/integrations/v1/me", nil, &info); err != nil {
		if firstErr != nil {
			return "", eris.Wrap(firstErr, "hubspot: portal id")
		}
		return "", eris.Wrap(err, "hubspot: portal id")
	}
	if info.PortalID == "" {
		return "", eris.New("hubspot: portal id not present in response")
	}
	return info.PortalID.String(), nil
}
