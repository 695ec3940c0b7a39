package crm

import (
	"strings"

	"github.com/sells-group/account-brief/internal/model"
)

// CreateCompanyProperties maps a company profile onto a new company record.
// Industry and employee count are only set when they map cleanly.
func CreateCompanyProperties(c model.CompanyProfile, domain string) map[string]any {
	name := c.Name
	if name == "" {
		name = domain
	}
	city, _, _ := strings.Cut(c.Headquarters, ",")

	props := map[string]any{
		"name":        name,
		"domain":      domain,
		"city":        strings.TrimSpace(city),
		"description": c.Description,
	}
	addFirmographics(props, c)
	return props
}

// UpdateCompanyProperties maps a company profile onto an existing record.
// Name and domain are left as they are in the CRM.
func UpdateCompanyProperties(c model.CompanyProfile) map[string]any {
	props := map[string]any{
		"description": c.Description,
	}
	addFirmographics(props, c)
	return props
}

func addFirmographics(props map[string]any, c model.CompanyProfile) {
	if industry, ok := MapIndustry(c.Industry); ok {
		props["industry"] = industry
	}
	if n, ok := ParseEmployeeCount(c.Size); ok {
		props["numberofemployees"] = n
	}
}

// ContactProperties maps a stakeholder onto a contact record.
func ContactProperties(s model.Stakeholder) map[string]any {
	first, last, _ := strings.Cut(s.Name, " ")
	props := map[string]any{
		"firstname": first,
		"lastname":  last,
		"jobtitle":  s.Title,
	}
	if strings.Contains(s.Email, "@") {
		props["email"] = s.Email
	}
	for key, v := range map[string]string{
		"hs_linkedinid": s.LinkedInURL,
		"city":          s.City,
		"state":         s.State,
		"country":       s.Country,
	} {
		if v != "" {
			props[key] = v
		}
	}
	return props
}
