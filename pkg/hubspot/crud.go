package hubspot

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

// Association type labels for the v3 associations API.
const (
	AssocContactToCompany = "contact_to_company"
	AssocNoteToCompany    = "note_to_company"
)

// CompanySearchProperties are returned for company lookups.
var CompanySearchProperties = []string{"name", "domain", "industry", "numberofemployees", "city", "state", "country"}

// ContactSearchProperties are returned for contact lookups.
var ContactSearchProperties = []string{"firstname", "lastname", "email", "jobtitle"}

// findOne runs an EQ search on a single property and returns the first match,
// or nil when there is none.
func findOne(ctx context.Context, c Client, objectType, property, value string, props []string) (*Object, error) {
	resp, err := c.SearchObjects(ctx, objectType, SearchRequest{
		FilterGroups: []FilterGroup{{
			Filters: []Filter{{PropertyName: property, Operator: "EQ", Value: value}},
		}},
		Properties: props,
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Results) == 0 {
		return nil, nil
	}
	obj := resp.Results[0]
	return &obj, nil
}

// FindCompanyByDomain returns the first company whose domain equals domain,
// or nil when none exists.
func FindCompanyByDomain(ctx context.Context, c Client, domain string) (*Object, error) {
	if domain == "" {
		return nil, eris.New("hubspot: domain is required")
	}
	obj, err := findOne(ctx, c, ObjectCompanies, "domain", domain, CompanySearchProperties)
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hubspot: find company %s", domain))
	}
	return obj, nil
}

// CreateCompany creates a company record and returns it.
func CreateCompany(ctx context.Context, c Client, props map[string]any) (*Object, error) {
	obj, err := c.CreateObject(ctx, ObjectCompanies, props)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: create company")
	}
	return obj, nil
}

// UpdateCompany patches a company record.
func UpdateCompany(ctx context.Context, c Client, companyID string, props map[string]any) (*Object, error) {
	if companyID == "" {
		return nil, eris.New("hubspot: company id is required")
	}
	obj, err := c.UpdateObject(ctx, ObjectCompanies, companyID, props)
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hubspot: update company %s", companyID))
	}
	return obj, nil
}

// FindContactByEmail returns the first contact with the given email, or nil.
func FindContactByEmail(ctx context.Context, c Client, email string) (*Object, error) {
	if email == "" {
		return nil, eris.New("hubspot: email is required")
	}
	obj, err := findOne(ctx, c, ObjectContacts, "email", email, ContactSearchProperties)
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("hubspot: find contact %s", email))
	}
	return obj, nil
}

// CreateContact creates a contact record and returns it.
func CreateContact(ctx context.Context, c Client, props map[string]any) (*Object, error) {
	obj, err := c.CreateObject(ctx, ObjectContacts, props)
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: create contact")
	}
	return obj, nil
}

// AssociateContactWithCompany links a contact to a company.
func AssociateContactWithCompany(ctx context.Context, c Client, contactID, companyID string) error {
	if contactID == "" || companyID == "" {
		return eris.New("hubspot: contact and company ids are required")
	}
	if err := c.Associate(ctx, ObjectContacts, contactID, ObjectCompanies, companyID, AssocContactToCompany); err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: associate contact %s", contactID))
	}
	return nil
}

// CreateNote creates a note with the given body, timestamped at ts.
func CreateNote(ctx context.Context, c Client, body string, ts time.Time) (*Object, error) {
	obj, err := c.CreateObject(ctx, ObjectNotes, map[string]any{
		"hs_note_body": body,
		"hs_timestamp": ts.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, eris.Wrap(err, "hubspot: create note")
	}
	return obj, nil
}

// AssociateNoteWithCompany links a note to a company.
func AssociateNoteWithCompany(ctx context.Context, c Client, noteID, companyID string) error {
	if noteID == "" || companyID == "" {
		return eris.New("hubspot: note and company ids are required")
	}
	if err := c.Associate(ctx, ObjectNotes, noteID, ObjectCompanies, companyID, AssocNoteToCompany); err != nil {
		return eris.Wrap(err, fmt.Sprintf("hubspot: associate note %s", noteID))
	}
	return nil
}

// CompanyURL builds the app link for a company record. Without a portal ID
// the portal-less form is returned, which HubSpot redirects after login.
func CompanyURL(portalID, companyID string) string {
	if portalID == "" {
		return "https://app.hubspot.com/contacts/companies/" + companyID
	}
	return fmt.Sprintf("https://app.hubspot.com/contacts/%s/company/%s", portalID, companyID)
}
