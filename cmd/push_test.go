package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/account-brief/internal/apperr"
)

func TestReadPushRequest_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"domain": "patagonia.com",
		"companyName": "Patagonia",
		"company": {"name": "Patagonia", "headquarters": "Ventura, CA"},
		"icpScore": {"score": 85, "reasoning": "fit"},
		"stakeholders": [{"name": "Ann Lee", "title": "CSO"}],
		"stakeholderSource": "apollo",
		"searchResults": []
	}`), 0o644))

	req, err := readPushRequest(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "patagonia.com", req.Domain)
	require.NotNil(t, req.Company)
	assert.Equal(t, "Ventura, CA", req.Company.Headquarters)
	require.NotNil(t, req.ICPScore)
	assert.Equal(t, 85, req.ICPScore.Score)
	assert.Len(t, req.Stakeholders, 1)
}

func TestReadPushRequest_Stdin(t *testing.T) {
	req, err := readPushRequest("-", strings.NewReader(`{"domain":"acme.com"}`))
	require.NoError(t, err)
	assert.Equal(t, "acme.com", req.Domain)
	assert.Nil(t, req.Company)
}

func TestReadPushRequest_Errors(t *testing.T) {
	_, err := readPushRequest(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	_, err = readPushRequest("-", strings.NewReader(`{"domain":`))
	assert.Error(t, err)

	_, err = readPushRequest("-", strings.NewReader(`{"company":{"name":"Acme"}}`))
	assert.Equal(t, 400, apperr.HTTPStatus(err))
}
