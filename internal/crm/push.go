// Package crm pushes reviewed account briefs into HubSpot: company upsert,
// per-stakeholder contacts and a summary note.
package crm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/account-brief/internal/apperr"
	"github.com/sells-group/account-brief/internal/metrics"
	"github.com/sells-group/account-brief/internal/model"
	"github.com/sells-group/account-brief/pkg/hubspot"
)

const reasonAlreadyExists = "Already exists"

// Pusher writes briefs to HubSpot.
type Pusher struct {
	client      hubspot.Client
	concurrency int
	metrics     *metrics.Metrics
	now         func() time.Time

	mu       sync.Mutex
	portalID string
}

// Option configures a Pusher.
type Option func(*Pusher)

// WithPortalID fixes the portal used in record links and skips the lookup.
func WithPortalID(id string) Option {
	return func(p *Pusher) {
		p.portalID = id
	}
}

// WithContactConcurrency bounds how many stakeholders are written at once.
func WithContactConcurrency(n int) Option {
	return func(p *Pusher) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithMetrics records contact outcomes and HubSpot call latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pusher) {
		p.metrics = m
	}
}

// WithClock overrides the time source used for the note.
func WithClock(now func() time.Time) Option {
	return func(p *Pusher) {
		p.now = now
	}
}

// NewPusher creates a Pusher over an authenticated HubSpot client.
func NewPusher(client hubspot.Client, opts ...Option) *Pusher {
	p := &Pusher{
		client:      client,
		concurrency: 1,
		now:         time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	p.client = observe(p.client, p.metrics)
	return p
}

// Push upserts the company, writes every stakeholder independently and
// attaches a note. Company failures abort the push; stakeholder failures are
// recorded in the ledger; note failures are logged and ignored.
func (p *Pusher) Push(ctx context.Context, req model.PushRequest) (*model.PushResult, error) {
	if strings.TrimSpace(req.Domain) == "" {
		return nil, apperr.NewValidationError("domain", "Domain is required")
	}
	log := zap.L().With(zap.String("domain", req.Domain))

	companyID, created, err := p.upsertCompany(ctx, req)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("company_id", companyID))
	log.Info("crm: company resolved", zap.Bool("created", created))

	result := &model.PushResult{
		CompanyID:       companyID,
		CompanyCreated:  created,
		CreatedContacts: []model.CreatedContact{},
		SkippedContacts: []model.SkippedContact{},
	}

	for _, o := range p.writeStakeholders(ctx, log, companyID, req.Stakeholders) {
		switch {
		case o.created != nil:
			result.CreatedContacts = append(result.CreatedContacts, *o.created)
			p.metrics.ContactOutcome(metrics.OutcomeCreated)
		case o.skipped != nil:
			result.SkippedContacts = append(result.SkippedContacts, *o.skipped)
			p.metrics.ContactOutcome(metrics.OutcomeSkipped)
		}
	}

	result.NoteID = p.attachNote(ctx, log, companyID, req)
	result.HubSpotURL = hubspot.CompanyURL(p.resolvePortalID(ctx, log), companyID)

	log.Info("crm: push complete",
		zap.Int("contacts_created", len(result.CreatedContacts)),
		zap.Int("contacts_skipped", len(result.SkippedContacts)),
	)
	return result, nil
}

func (p *Pusher) upsertCompany(ctx context.Context, req model.PushRequest) (string, bool, error) {
	var profile model.CompanyProfile
	if req.Company != nil {
		profile = *req.Company
	}

	existing, err := hubspot.FindCompanyByDomain(ctx, p.client, req.Domain)
	if err != nil {
		return "", false, eris.Wrap(err, "crm: find company")
	}

	if existing != nil {
		if _, err := hubspot.UpdateCompany(ctx, p.client, existing.ID, UpdateCompanyProperties(profile)); err != nil {
			return "", false, eris.Wrap(err, "crm: update company")
		}
		return existing.ID, false, nil
	}

	obj, err := hubspot.CreateCompany(ctx, p.client, CreateCompanyProperties(profile, req.Domain))
	if err != nil {
		return "", false, eris.Wrap(err, "crm: create company")
	}
	if obj == nil || obj.ID == "" {
		return "", false, eris.New("crm: company created without id")
	}
	return obj.ID, true, nil
}

// outcome is one stakeholder's ledger entry; exactly one field is set.
type outcome struct {
	created *model.CreatedContact
	skipped *model.SkippedContact
}

// writeStakeholders runs one isolated task per stakeholder. Each task writes
// only its own slot, so the ledger keeps input order.
func (p *Pusher) writeStakeholders(ctx context.Context, log *zap.Logger, companyID string, stakeholders []model.Stakeholder) []outcome {
	outcomes := make([]outcome, len(stakeholders))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, s := range stakeholders {
		g.Go(func() error {
			outcomes[i] = p.writeStakeholder(ctx, log, companyID, s)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (p *Pusher) writeStakeholder(ctx context.Context, log *zap.Logger, companyID string, s model.Stakeholder) outcome {
	id, err := p.upsertContact(ctx, companyID, s)
	if err != nil {
		werr := &apperr.StakeholderWriteError{Name: s.Name, Err: err}
		log.Warn("crm: stakeholder skipped", zap.String("name", s.Name), zap.Error(werr))
		return outcome{skipped: &model.SkippedContact{Name: s.Name, Reason: skipReason(err)}}
	}
	if id == "" {
		return outcome{skipped: &model.SkippedContact{Name: s.Name, Reason: reasonAlreadyExists}}
	}
	return outcome{created: &model.CreatedContact{Name: s.Name, ID: id}}
}

// upsertContact returns the new contact ID, or "" when an existing contact
// was found by email and only associated.
func (p *Pusher) upsertContact(ctx context.Context, companyID string, s model.Stakeholder) (string, error) {
	if s.Email != "" {
		existing, err := hubspot.FindContactByEmail(ctx, p.client, s.Email)
		if err != nil {
			return "", err
		}
		if existing != nil {
			if err := hubspot.AssociateContactWithCompany(ctx, p.client, existing.ID, companyID); err != nil {
				return "", err
			}
			return "", nil
		}
	}

	contact, err := hubspot.CreateContact(ctx, p.client, ContactProperties(s))
	if err != nil {
		return "", err
	}
	if contact == nil || contact.ID == "" {
		return "", eris.New("no id returned")
	}
	if err := hubspot.AssociateContactWithCompany(ctx, p.client, contact.ID, companyID); err != nil {
		return "", err
	}
	return contact.ID, nil
}

// skipReason prefers the upstream API message over the wrapped chain.
func skipReason(err error) string {
	if pe, ok := apperr.AsProvider(err); ok {
		return pe.Error()
	}
	return err.Error()
}

func (p *Pusher) attachNote(ctx context.Context, log *zap.Logger, companyID string, req model.PushRequest) string {
	now := p.now()
	note, err := hubspot.CreateNote(ctx, p.client, FormatNote(req, now), now)
	if err != nil {
		log.Warn("crm: note creation failed", zap.Error(err))
		return ""
	}
	if note == nil || note.ID == "" {
		return ""
	}
	if err := hubspot.AssociateNoteWithCompany(ctx, p.client, note.ID, companyID); err != nil {
		log.Warn("crm: note association failed", zap.String("note_id", note.ID), zap.Error(err))
	}
	return note.ID
}

// resolvePortalID returns the configured portal, or looks it up once and
// caches a successful answer.
func (p *Pusher) resolvePortalID(ctx context.Context, log *zap.Logger) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.portalID != "" {
		return p.portalID
	}
	id, err := p.client.PortalID(ctx)
	if err != nil {
		log.Debug("crm: portal id unavailable", zap.Error(err))
		return ""
	}
	p.portalID = id
	return id
}
