// Package apollo provides a client for the Apollo.io people search API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/account-brief/internal/apperr"
)

const defaultBaseURL = "https://api.apollo.io"

// DefaultTitles are the job titles searched when the caller supplies none:
// sustainability, finance, procurement and operations leadership.
var DefaultTitles = []string{
	"Chief Sustainability Officer",
	"VP Sustainability",
	"Head of Sustainability",
	"Director of Sustainability",
	"ESG Director",
	"Chief Financial Officer",
	"CFO",
	"VP Finance",
	"VP Procurement",
	"Head of Procurement",
	"Chief Operating Officer",
	"COO",
}

// DefaultSeniorities are the seniority tiers every people search is filtered to.
var DefaultSeniorities = []string{"c_suite", "vp", "director"}

// Client performs people searches against the Apollo API.
type Client interface {
	SearchPeople(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error)
}

// PeopleSearchRequest is the request body for POST /v1/mixed_people/search.
type PeopleSearchRequest struct {
	OrganizationDomains string   `json:"q_organization_domains"`
	PersonTitles        []string `json:"person_titles"`
	PersonSeniorities   []string `json:"person_seniorities"`
	Page                int      `json:"page"`
	PerPage             int      `json:"per_page"`
}

// PeopleSearchResponse is the response from POST /v1/mixed_people/search.
type PeopleSearchResponse struct {
	People     []Person   `json:"people"`
	Pagination Pagination `json:"pagination"`
}

// Person is a single Apollo person record.
type Person struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	LinkedInURL string `json:"linkedin_url"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

// Pagination reports paging state.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalEntries int `json:"total_entries"`
}

// Option configures the client.
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

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates an Apollo API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
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

func (c *httpClient) SearchPeople(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/mixed_people/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.NewProviderError("Apollo", resp.StatusCode, respBody)
	}

	var result PeopleSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal response")
	}

	return &result, nil
}
