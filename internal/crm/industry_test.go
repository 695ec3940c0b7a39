package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapIndustry(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"SaaS", "COMPUTER_SOFTWARE", true},
		{"Retail", "RETAIL", true},
		{"retail", "RETAIL", true},
		{"Computer Software", "COMPUTER_SOFTWARE", true},
		{"Information Technology and Services", "INFORMATION_TECHNOLOGY_AND_SERVICES", true},
		{"Outdoor Apparel", "APPAREL_FASHION", true},
		{"Outdoor gear", "SPORTING_GOODS", true},
		{"Healthcare", "HOSPITAL_HEALTH_CARE", true},
		{"Digital health", "HEALTH_WELLNESS_AND_FITNESS", true},
		{"Renewable Energy", "OIL_ENERGY", true},
		{"Non-profit", "NON_PROFIT_ORGANIZATION_MANAGEMENT", true},
		{"Food & Beverage", "FOOD_BEVERAGES", true},
		{"E-Learning", "E_LEARNING", true},
		{"Widgets", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MapIndustry(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIndustry(t *testing.T) {
	assert.Equal(t, "FOOD_BEVERAGE", normalizeIndustry("Food & Beverage"))
	assert.Equal(t, "B_B_SAAS_", normalizeIndustry("b2b SaaS!"))
}

func TestHubSpotIndustryVocabulary(t *testing.T) {
	assert.Len(t, hubspotIndustries, 148)
	for _, syn := range industrySynonyms {
		_, ok := hubspotIndustries[syn.code]
		assert.True(t, ok, syn.code)
	}
}

func TestParseEmployeeCount(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"1,000 - 5,000 employees", 1000, true},
		{"~250 people", 250, true},
		{"10000+", 10000, true},
		{"Large", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseEmployeeCount(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
