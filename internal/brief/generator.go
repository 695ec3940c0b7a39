// Package brief assembles account briefs: evidence search, optional people
// enrichment and a single LLM synthesis.
package brief

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/account-brief/internal/apperr"
	"github.com/sells-group/account-brief/internal/domain"
	"github.com/sells-group/account-brief/internal/metrics"
	"github.com/sells-group/account-brief/internal/model"
	"github.com/sells-group/account-brief/pkg/tavily"
)

const defaultDisplayResults = 6

// Evidence group labels as they appear in the prompt.
const (
	LabelSite    = "COMPANY WEBSITE (sustainability pages)"
	LabelNews    = "RECENT SUSTAINABILITY NEWS"
	LabelCompany = "COMPANY INFORMATION"
)

// SiteQuery searches the company's own sustainability pages.
func SiteQuery(d string) string {
	return fmt.Sprintf("site:%s sustainability ESG carbon climate", d)
}

// NewsQuery searches recent sustainability coverage of the company.
func NewsQuery(name string) string {
	return fmt.Sprintf("%q sustainability ESG carbon news 2024 2025", name)
}

// CompanyQuery searches firmographic facts about the company.
func CompanyQuery(name string) string {
	return fmt.Sprintf("%q company headquarters employees industry funding", name)
}

// Generator produces briefs and search summaries for a domain.
type Generator struct {
	search         tavily.Client
	people         *PeopleFinder
	synth          *Synthesizer
	displayResults int
	metrics        *metrics.Metrics
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithDisplayResults caps the search results returned with a brief.
func WithDisplayResults(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.displayResults = n
		}
	}
}

// WithMetrics records search call outcomes.
func WithMetrics(m *metrics.Metrics) GeneratorOption {
	return func(g *Generator) {
		g.metrics = m
	}
}

// NewGenerator creates a Generator. people may be nil; synth may be nil for
// a search-only generator.
func NewGenerator(search tavily.Client, people *PeopleFinder, synth *Synthesizer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		search:         search,
		people:         people,
		synth:          synth,
		displayResults: defaultDisplayResults,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func normalizeInput(raw string) (string, string, error) {
	d := domain.Normalize(strings.TrimSpace(raw))
	if d == "" {
		return "", "", apperr.NewValidationError("domain", "Domain is required")
	}
	return d, domain.CompanyName(d), nil
}

// Generate builds a full brief for raw. Any search failure aborts; people
// search failures only drop the verified stakeholders.
func (g *Generator) Generate(ctx context.Context, raw string) (*model.Brief, error) {
	d, name, err := normalizeInput(raw)
	if err != nil {
		return nil, err
	}
	if g.synth == nil {
		return nil, eris.New("brief: generator has no synthesizer")
	}
	log := zap.L().With(zap.String("domain", d))

	var (
		site, news, company []model.SearchResult
		people              []model.Stakeholder
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		resp, err := g.searchOne(gctx, SiteQuery(d))
		site = toResults(resp)
		return err
	})
	eg.Go(func() error {
		resp, err := g.searchOne(gctx, NewsQuery(name))
		news = toResults(resp)
		return err
	})
	eg.Go(func() error {
		resp, err := g.searchOne(gctx, CompanyQuery(name))
		company = toResults(resp)
		return err
	})
	eg.Go(func() error {
		people = g.people.SearchPeopleByDomain(gctx, d)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	unique := Aggregate(site, news, company)
	log.Info("brief: evidence gathered",
		zap.Int("results", len(unique)),
		zap.Int("verified_stakeholders", len(people)),
	)

	synthesis, err := g.synth.Synthesize(ctx, SynthesisInput{
		Domain:      d,
		CompanyName: name,
		Evidence: []EvidenceGroup{
			{Label: LabelSite, Results: site},
			{Label: LabelNews, Results: news},
			{Label: LabelCompany, Results: company},
		},
		HasVerifiedStakeholders: len(people) > 0,
	})
	if err != nil {
		return nil, err
	}

	b := &model.Brief{
		Domain:                d,
		CompanyName:           name,
		Company:               synthesis.Company,
		ICPScore:              synthesis.ICPScore,
		SustainabilitySignals: synthesis.SustainabilitySignals,
		Stakeholders:          synthesis.Stakeholders,
		StakeholderSource:     model.StakeholderSourceLLM,
		TalkingPoints:         synthesis.TalkingPoints,
		SearchResults:         truncate(unique, g.displayResults),
		TotalSearchResults:    len(unique),
	}
	if len(people) > 0 {
		b.Stakeholders = people
		b.StakeholderSource = model.StakeholderSourceApollo
	}
	return b, nil
}

// Search runs the site and news searches only, returning every unique result
// together with the provider's synthesized answers.
func (g *Generator) Search(ctx context.Context, raw string) (*model.SearchSummary, error) {
	d, name, err := normalizeInput(raw)
	if err != nil {
		return nil, err
	}

	var site, news *tavily.SearchResponse
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		site, err = g.searchOne(gctx, SiteQuery(d))
		return err
	})
	eg.Go(func() error {
		var err error
		news, err = g.searchOne(gctx, NewsQuery(name))
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	unique := Aggregate(toResults(site), toResults(news))
	return &model.SearchSummary{
		Domain:           d,
		CompanyName:      name,
		Results:          unique,
		SiteSearchAnswer: site.Answer,
		NewsSearchAnswer: news.Answer,
		TotalResults:     len(unique),
	}, nil
}

func (g *Generator) searchOne(ctx context.Context, query string) (*tavily.SearchResponse, error) {
	start := time.Now()
	resp, err := g.search.Search(ctx, tavily.SearchRequest{Query: query})
	g.metrics.ObserveProvider("tavily", start, err)
	if err != nil {
		return nil, eris.Wrapf(err, "brief: search %q", query)
	}
	return resp, nil
}

func toResults(resp *tavily.SearchResponse) []model.SearchResult {
	if resp == nil {
		return nil
	}
	out := make([]model.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, model.SearchResult{
			Title:   r.Title,
			Content: r.Content,
			URL:     r.URL,
			Score:   r.Score,
		})
	}
	return out
}

func truncate(results []model.SearchResult, n int) []model.SearchResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}
