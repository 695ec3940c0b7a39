package crm

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// hubspotIndustries is the enumerated vocabulary of the HubSpot company
// "industry" property. Values outside it are rejected by the API.
var hubspotIndustries = map[string]struct{}{}

func init() {
	for _, code := range []string{
		"ACCOUNTING", "AIRLINES_AVIATION", "ALTERNATIVE_DISPUTE_RESOLUTION", "ALTERNATIVE_MEDICINE",
		"ANIMATION", "APPAREL_FASHION", "ARCHITECTURE_PLANNING", "ARTS_AND_CRAFTS", "AUTOMOTIVE",
		"AVIATION_AEROSPACE", "BANKING", "BIOTECHNOLOGY", "BROADCAST_MEDIA", "BUILDING_MATERIALS",
		"BUSINESS_SUPPLIES_AND_EQUIPMENT", "CAPITAL_MARKETS", "CHEMICALS", "CIVIC_SOCIAL_ORGANIZATION",
		"CIVIL_ENGINEERING", "COMMERCIAL_REAL_ESTATE", "COMPUTER_NETWORK_SECURITY", "COMPUTER_GAMES",
		"COMPUTER_HARDWARE", "COMPUTER_NETWORKING", "COMPUTER_SOFTWARE", "INTERNET", "CONSTRUCTION",
		"CONSUMER_ELECTRONICS", "CONSUMER_GOODS", "CONSUMER_SERVICES", "COSMETICS", "DAIRY",
		"DEFENSE_SPACE", "DESIGN", "EDUCATION_MANAGEMENT", "E_LEARNING", "ELECTRICAL_ELECTRONIC_MANUFACTURING",
		"ENTERTAINMENT", "ENVIRONMENTAL_SERVICES", "EVENTS_SERVICES", "EXECUTIVE_OFFICE", "FACILITIES_SERVICES",
		"FARMING", "FINANCIAL_SERVICES", "FINE_ART", "FISHERY", "FOOD_BEVERAGES", "FOOD_PRODUCTION",
		"FUND_RAISING", "FURNITURE", "GAMBLING_CASINOS", "GLASS_CERAMICS_CONCRETE", "GOVERNMENT_ADMINISTRATION",
		"GOVERNMENT_RELATIONS", "GRAPHIC_DESIGN", "HEALTH_WELLNESS_AND_FITNESS", "HIGHER_EDUCATION",
		"HOSPITAL_HEALTH_CARE", "HOSPITALITY", "HUMAN_RESOURCES", "IMPORT_AND_EXPORT",
		"INDIVIDUAL_FAMILY_SERVICES", "INDUSTRIAL_AUTOMATION", "INFORMATION_SERVICES",
		"INFORMATION_TECHNOLOGY_AND_SERVICES", "INSURANCE", "INTERNATIONAL_AFFAIRS",
		"INTERNATIONAL_TRADE_AND_DEVELOPMENT", "INVESTMENT_BANKING", "INVESTMENT_MANAGEMENT",
		"JUDICIARY", "LAW_ENFORCEMENT", "LAW_PRACTICE", "LEGAL_SERVICES", "LEGISLATIVE_OFFICE",
		"LEISURE_TRAVEL_TOURISM", "LIBRARIES", "LOGISTICS_AND_SUPPLY_CHAIN", "LUXURY_GOODS_JEWELRY",
		"MACHINERY", "MANAGEMENT_CONSULTING", "MARITIME", "MARKET_RESEARCH", "MARKETING_AND_ADVERTISING",
		"MECHANICAL_OR_INDUSTRIAL_ENGINEERING", "MEDIA_PRODUCTION", "MEDICAL_DEVICES", "MEDICAL_PRACTICE",
		"MENTAL_HEALTH_CARE", "MILITARY", "MINING_METALS", "MOTION_PICTURES_AND_FILM",
		"MUSEUMS_AND_INSTITUTIONS", "MUSIC", "NANOTECHNOLOGY", "NEWSPAPERS",
		"NON_PROFIT_ORGANIZATION_MANAGEMENT", "OIL_ENERGY", "ONLINE_MEDIA", "OUTSOURCING_OFFSHORING",
		"PACKAGE_FREIGHT_DELIVERY", "PACKAGING_AND_CONTAINERS", "PAPER_FOREST_PRODUCTS", "PERFORMING_ARTS",
		"PHARMACEUTICALS", "PHILANTHROPY", "PHOTOGRAPHY", "PLASTICS", "POLITICAL_ORGANIZATION",
		"PRIMARY_SECONDARY_EDUCATION", "PRINTING", "PROFESSIONAL_TRAINING_COACHING", "PROGRAM_DEVELOPMENT",
		"PUBLIC_POLICY", "PUBLIC_RELATIONS_AND_COMMUNICATIONS", "PUBLIC_SAFETY", "PUBLISHING",
		"RAILROAD_MANUFACTURE", "RANCHING", "REAL_ESTATE", "RECREATIONAL_FACILITIES_AND_SERVICES",
		"RELIGIOUS_INSTITUTIONS", "RENEWABLES_ENVIRONMENT", "RESEARCH", "RESTAURANTS", "RETAIL",
		"SECURITY_AND_INVESTIGATIONS", "SEMICONDUCTORS", "SHIPBUILDING", "SPORTING_GOODS", "SPORTS",
		"STAFFING_AND_RECRUITING", "SUPERMARKETS", "TELECOMMUNICATIONS", "TEXTILES", "THINK_TANKS",
		"TOBACCO", "TRANSLATION_AND_LOCALIZATION", "TRANSPORTATION_TRUCKING_RAILROAD", "UTILITIES",
		"VENTURE_CAPITAL_PRIVATE_EQUITY", "VETERINARY", "WAREHOUSING", "WHOLESALE", "WINE_AND_SPIRITS",
		"WIRELESS", "WRITING_AND_EDITING", "MOBILE_GAMES",
	} {
		hubspotIndustries[code] = struct{}{}
	}
}

// industrySynonyms is checked in order; the first keyword contained in the
// normalized text wins.
var industrySynonyms = []struct {
	keyword string
	code    string
}{
	{"RETAIL", "RETAIL"},
	{"APPAREL", "APPAREL_FASHION"},
	{"FASHION", "APPAREL_FASHION"},
	{"OUTDOOR", "SPORTING_GOODS"},
	{"OUTDOORS", "SPORTING_GOODS"},
	{"TECHNOLOGY", "INFORMATION_TECHNOLOGY_AND_SERVICES"},
	{"TECH", "INFORMATION_TECHNOLOGY_AND_SERVICES"},
	{"SOFTWARE", "COMPUTER_SOFTWARE"},
	{"SAAS", "COMPUTER_SOFTWARE"},
	{"FINANCE", "FINANCIAL_SERVICES"},
	{"HEALTHCARE", "HOSPITAL_HEALTH_CARE"},
	{"HEALTH", "HEALTH_WELLNESS_AND_FITNESS"},
	{"ENERGY", "OIL_ENERGY"},
	{"RENEWABLE", "RENEWABLES_ENVIRONMENT"},
	{"SUSTAINABILITY", "ENVIRONMENTAL_SERVICES"},
	{"CONSULTING", "MANAGEMENT_CONSULTING"},
	{"MANUFACTURING", "ELECTRICAL_ELECTRONIC_MANUFACTURING"},
	{"MEDIA", "MEDIA_PRODUCTION"},
	{"FOOD", "FOOD_BEVERAGES"},
	{"BEVERAGE", "FOOD_BEVERAGES"},
	{"TRAVEL", "LEISURE_TRAVEL_TOURISM"},
	{"HOSPITALITY", "HOSPITALITY"},
	{"EDUCATION", "EDUCATION_MANAGEMENT"},
	{"NONPROFIT", "NON_PROFIT_ORGANIZATION_MANAGEMENT"},
	{"NON_PROFIT", "NON_PROFIT_ORGANIZATION_MANAGEMENT"},
}

var (
	upper       = cases.Upper(language.Und)
	nonLetterRe = regexp.MustCompile(`[^A-Z]`)
	underRunRe  = regexp.MustCompile(`_+`)
	digitsRe    = regexp.MustCompile(`[\d,]+`)
)

func normalizeIndustry(text string) string {
	s := nonLetterRe.ReplaceAllString(upper.String(text), "_")
	return underRunRe.ReplaceAllString(s, "_")
}

// MapIndustry maps free-text industry onto the HubSpot industry vocabulary.
// It reports false when nothing matches; callers then omit the property.
func MapIndustry(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	normalized := normalizeIndustry(text)
	if _, ok := hubspotIndustries[normalized]; ok {
		return normalized, true
	}
	for _, syn := range industrySynonyms {
		if strings.Contains(normalized, syn.keyword) {
			return syn.code, true
		}
	}
	return "", false
}

// ParseEmployeeCount extracts the first integer from text such as
// "1,000 - 5,000 employees".
func ParseEmployeeCount(text string) (int, bool) {
	m := digitsRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
