package hubspot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCompanyByDomain(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var captured SearchRequest
		mc := &mockClient{
			searchFn: func(_ context.Context, objectType string, req SearchRequest) (*SearchResponse, error) {
				assert.Equal(t, ObjectCompanies, objectType)
				captured = req
				return &SearchResponse{Total: 1, Results: []Object{{ID: "42"}}}, nil
			},
		}
		obj, err := FindCompanyByDomain(context.Background(), mc, "acme.com")
		require.NoError(t, err)
		require.NotNil(t, obj)
		assert.Equal(t, "42", obj.ID)
		assert.Equal(t, "domain", captured.FilterGroups[0].Filters[0].PropertyName)
		assert.Equal(t, "EQ", captured.FilterGroups[0].Filters[0].Operator)
		assert.Equal(t, CompanySearchProperties, captured.Properties)
	})

	t.Run("not found", func(t *testing.T) {
		obj, err := FindCompanyByDomain(context.Background(), &mockClient{}, "acme.com")
		require.NoError(t, err)
		assert.Nil(t, obj)
	})

	t.Run("empty domain", func(t *testing.T) {
		_, err := FindCompanyByDomain(context.Background(), &mockClient{}, "")
		assert.Error(t, err)
	})

	t.Run("propagates error", func(t *testing.T) {
		mc := &mockClient{
			searchFn: func(context.Context, string, SearchRequest) (*SearchResponse, error) {
				return nil, errors.New("boom")
			},
		}
		_, err := FindCompanyByDomain(context.Background(), mc, "acme.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "find company acme.com")
	})
}

func TestFindContactByEmail(t *testing.T) {
	mc := &mockClient{
		searchFn: func(_ context.Context, objectType string, req SearchRequest) (*SearchResponse, error) {
			assert.Equal(t, ObjectContacts, objectType)
			assert.Equal(t, "email", req.FilterGroups[0].Filters[0].PropertyName)
			assert.Equal(t, "jane@acme.com", req.FilterGroups[0].Filters[0].Value)
			return &SearchResponse{Results: []Object{{ID: "c1"}}}, nil
		},
	}
	obj, err := FindContactByEmail(context.Background(), mc, "jane@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "c1", obj.ID)
}

func TestUpdateCompany(t *testing.T) {
	_, err := UpdateCompany(context.Background(), &mockClient{}, "", map[string]any{"description": "x"})
	assert.Error(t, err)

	var gotID string
	mc := &mockClient{
		updateFn: func(_ context.Context, _ string, id string, props map[string]any) (*Object, error) {
			gotID = id
			return &Object{ID: id, Properties: props}, nil
		},
	}
	obj, err := UpdateCompany(context.Background(), mc, "42", map[string]any{"description": "x"})
	require.NoError(t, err)
	assert.Equal(t, "42", gotID)
	assert.Equal(t, "42", obj.ID)
}

func TestCreateNote(t *testing.T) {
	ts := time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)
	var props map[string]any
	mc := &mockClient{
		createFn: func(_ context.Context, objectType string, p map[string]any) (*Object, error) {
			assert.Equal(t, ObjectNotes, objectType)
			props = p
			return &Object{ID: "n1"}, nil
		},
	}
	obj, err := CreateNote(context.Background(), mc, "body", ts)
	require.NoError(t, err)
	assert.Equal(t, "n1", obj.ID)
	assert.Equal(t, "body", props["hs_note_body"])
	assert.Equal(t, "2025-03-04T15:00:00Z", props["hs_timestamp"])
}

func TestAssociations(t *testing.T) {
	var calls []string
	mc := &mockClient{
		associateFn: func(_ context.Context, fromType, fromID, toType, toID, assoc string) error {
			calls = append(calls, fromType+"/"+fromID+"->"+toType+"/"+toID+":"+assoc)
			return nil
		},
	}
	require.NoError(t, AssociateContactWithCompany(context.Background(), mc, "c1", "42"))
	require.NoError(t, AssociateNoteWithCompany(context.Background(), mc, "n1", "42"))
	assert.Equal(t, []string{
		"contacts/c1->companies/42:contact_to_company",
		"notes/n1->companies/42:note_to_company",
	}, calls)

	assert.Error(t, AssociateContactWithCompany(context.Background(), mc, "", "42"))
	assert.Error(t, AssociateNoteWithCompany(context.Background(), mc, "n1", ""))
}

func TestCompanyURL(t *testing.T) {
	assert.Equal(t, "https://app.hubspot.com/contacts/123/company/42", CompanyURL("123", "42"))
	assert.Equal(t, "https://app.hubspot.com/contacts/companies/42", CompanyURL("", "42"))
}
