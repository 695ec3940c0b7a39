// Package model holds the account brief data model shared by the generator,
// the CRM pusher and the HTTP layer.
package model

import (
	"encoding/json"
	"math"
)

// StakeholderSource identifies where a brief's stakeholder list came from.
type StakeholderSource string

const (
	// StakeholderSourceApollo marks verified contacts from the people provider.
	StakeholderSourceApollo StakeholderSource = "apollo"
	// StakeholderSourceLLM marks roles inferred by the language model.
	StakeholderSourceLLM StakeholderSource = "openai"
)

// SearchResult is a single web search hit. URL is its identity.
type SearchResult struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	URL     string  `json:"url"`
	Score   float64 `json:"score,omitempty"`
}

// Stakeholder is a named individual at the target company.
type Stakeholder struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
}

// CompanyProfile is the synthesized company overview.
type CompanyProfile struct {
	Name         string `json:"name"`
	Industry     string `json:"industry"`
	Size         string `json:"size"`
	Headquarters string `json:"headquarters"`
	Funding      string `json:"funding"`
	Description  string `json:"description"`
}

// ICPScore is the ideal-customer-profile fit score, 0-100.
type ICPScore struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// UnmarshalJSON accepts a fractional score and rounds it to the nearest
// integer.
func (s *ICPScore) UnmarshalJSON(b []byte) error {
	var raw struct {
		Score     float64 `json:"score"`
		Reasoning string  `json:"reasoning"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Score = int(math.Round(raw.Score))
	s.Reasoning = raw.Reasoning
	return nil
}

// Brief is the full account brief returned by generation.
type Brief struct {
	Domain                string            `json:"domain"`
	CompanyName           string            `json:"companyName"`
	Company               CompanyProfile    `json:"company"`
	ICPScore              ICPScore          `json:"icpScore"`
	SustainabilitySignals []string          `json:"sustainabilitySignals"`
	Stakeholders          []Stakeholder     `json:"stakeholders"`
	StakeholderSource     StakeholderSource `json:"stakeholderSource"`
	TalkingPoints         []string          `json:"talkingPoints"`
	SearchResults         []SearchResult    `json:"searchResults"`
	TotalSearchResults    int               `json:"totalSearchResults"`
}

// SearchSummary is the search-only view of a domain's evidence.
type SearchSummary struct {
	Domain           string         `json:"domain"`
	CompanyName      string         `json:"companyName"`
	Results          []SearchResult `json:"results"`
	SiteSearchAnswer string         `json:"siteSearchAnswer,omitempty"`
	NewsSearchAnswer string         `json:"newsSearchAnswer,omitempty"`
	TotalResults     int            `json:"totalResults"`
}
