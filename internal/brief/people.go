package brief

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/account-brief/internal/metrics"
	"github.com/sells-group/account-brief/internal/model"
	"github.com/sells-group/account-brief/pkg/apollo"
)

const maxStakeholders = 5

// PeopleFinder looks up verified stakeholders for a domain. It never fails:
// a nil client, an upstream error or an empty result all yield no people.
type PeopleFinder struct {
	client  apollo.Client
	perPage int
	metrics *metrics.Metrics
}

// NewPeopleFinder creates a PeopleFinder. A nil client disables the lookup.
func NewPeopleFinder(client apollo.Client, perPage int, m *metrics.Metrics) *PeopleFinder {
	if perPage <= 0 {
		perPage = 10
	}
	return &PeopleFinder{client: client, perPage: perPage, metrics: m}
}

// PeopleOption adjusts a single people search.
type PeopleOption func(*apollo.PeopleSearchRequest)

// WithTitles replaces the default title filter.
func WithTitles(titles ...string) PeopleOption {
	return func(r *apollo.PeopleSearchRequest) {
		if len(titles) > 0 {
			r.PersonTitles = titles
		}
	}
}

// WithPerPage overrides the page size.
func WithPerPage(n int) PeopleOption {
	return func(r *apollo.PeopleSearchRequest) {
		if n > 0 {
			r.PerPage = n
		}
	}
}

// SearchPeopleByDomain returns up to five stakeholders at domain.
func (f *PeopleFinder) SearchPeopleByDomain(ctx context.Context, domain string, opts ...PeopleOption) []model.Stakeholder {
	log := zap.L().With(zap.String("domain", domain))
	if f == nil || f.client == nil {
		log.Debug("brief: people search disabled, no apollo key")
		return []model.Stakeholder{}
	}

	req := apollo.PeopleSearchRequest{
		OrganizationDomains: domain,
		PersonTitles:        apollo.DefaultTitles,
		PersonSeniorities:   apollo.DefaultSeniorities,
		Page:                1,
		PerPage:             f.perPage,
	}
	for _, o := range opts {
		o(&req)
	}

	start := time.Now()
	resp, err := f.client.SearchPeople(ctx, req)
	f.metrics.ObserveProvider("apollo", start, err)
	if err != nil {
		log.Warn("brief: people search failed", zap.Error(err))
		return []model.Stakeholder{}
	}
	if resp == nil || len(resp.People) == 0 {
		log.Info("brief: no people found")
		return []model.Stakeholder{}
	}

	people := resp.People
	if len(people) > maxStakeholders {
		people = people[:maxStakeholders]
	}
	out := make([]model.Stakeholder, 0, len(people))
	for _, p := range people {
		out = append(out, toStakeholder(p))
	}
	return out
}

func toStakeholder(p apollo.Person) model.Stakeholder {
	name := p.Name
	if name == "" {
		name = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	title := p.Title
	if title == "" {
		title = "Unknown Title"
	}
	return model.Stakeholder{
		Name:        name,
		Title:       title,
		LinkedInURL: p.LinkedInURL,
		Email:       p.Email,
		PhotoURL:    p.PhotoURL,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
	}
}
