package apollo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPeople(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    string
		wantPeople int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"people": [
					{"id": "p1", "name": "Jane Doe", "title": "Chief Sustainability Officer", "email": "jane@patagonia.com", "city": "Ventura"},
					{"id": "p2", "first_name": "John", "last_name": "Roe", "title": "CFO"}
				],
				"pagination": {"page": 1, "per_page": 10, "total_entries": 2}
			}`,
			wantPeople: 2,
		},
		{
			name:       "empty",
			status:     http.StatusOK,
			body:       `{"people": []}`,
			wantPeople: 0,
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"error": "api key invalid"}`,
			wantErr: "Apollo API error: 403",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `[`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/mixed_people/search", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
				assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			resp, err := client.SearchPeople(context.Background(), PeopleSearchRequest{
				OrganizationDomains: "patagonia.com",
				PersonTitles:        DefaultTitles,
				PersonSeniorities:   DefaultSeniorities,
				PerPage:             10,
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Len(t, resp.People, tt.wantPeople)
		})
	}
}

func TestSearchPeople_RequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PeopleSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "patagonia.com", req.OrganizationDomains)
		assert.Equal(t, []string{"c_suite", "vp", "director"}, req.PersonSeniorities)
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 10, req.PerPage)
		assert.Len(t, req.PersonTitles, 12)

		_, _ = w.Write([]byte(`{"people": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.SearchPeople(context.Background(), PeopleSearchRequest{
		OrganizationDomains: "patagonia.com",
		PersonTitles:        DefaultTitles,
		PersonSeniorities:   DefaultSeniorities,
		PerPage:             10,
	})
	require.NoError(t, err)
}
