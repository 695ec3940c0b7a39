package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/account-brief/internal/model"
)

func TestCreateCompanyProperties(t *testing.T) {
	props := CreateCompanyProperties(model.CompanyProfile{
		Name:         "Acme",
		Industry:     "SaaS",
		Size:         "51-200",
		Headquarters: " Denver , Colorado",
		Description:  "Carbon accounting",
	}, "acme.com")

	assert.Equal(t, map[string]any{
		"name":              "Acme",
		"domain":            "acme.com",
		"city":              "Denver",
		"description":       "Carbon accounting",
		"industry":          "COMPUTER_SOFTWARE",
		"numberofemployees": 51,
	}, props)
}

func TestCreateCompanyProperties_Fallbacks(t *testing.T) {
	props := CreateCompanyProperties(model.CompanyProfile{Industry: "Widgets", Size: "unknown"}, "acme.com")

	assert.Equal(t, "acme.com", props["name"])
	assert.Equal(t, "", props["city"])
	assert.NotContains(t, props, "industry")
	assert.NotContains(t, props, "numberofemployees")
}

func TestUpdateCompanyProperties(t *testing.T) {
	props := UpdateCompanyProperties(model.CompanyProfile{Name: "Acme", Description: "d", Industry: "Retail"})
	assert.Equal(t, map[string]any{"description": "d", "industry": "RETAIL"}, props)
}

func TestContactProperties(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		props := ContactProperties(model.Stakeholder{
			Name:        "Mary Ann Smith",
			Title:       "CSO",
			Email:       "mary@acme.com",
			LinkedInURL: "https://linkedin.com/in/mary",
			City:        "Austin",
			State:       "TX",
			Country:     "US",
		})
		assert.Equal(t, map[string]any{
			"firstname":     "Mary",
			"lastname":      "Ann Smith",
			"jobtitle":      "CSO",
			"email":         "mary@acme.com",
			"hs_linkedinid": "https://linkedin.com/in/mary",
			"city":          "Austin",
			"state":         "TX",
			"country":       "US",
		}, props)
	})

	t.Run("single name and invalid email", func(t *testing.T) {
		props := ContactProperties(model.Stakeholder{Name: "Cher", Email: "not-an-email"})
		assert.Equal(t, map[string]any{
			"firstname": "Cher",
			"lastname":  "",
			"jobtitle":  "",
		}, props)
	})
}
