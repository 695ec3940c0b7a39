package model

// PushRequest is the subset of a reviewed brief sent to the CRM.
// Company and ICPScore are optional; the note omits their sections when nil.
type PushRequest struct {
	Domain                string          `json:"domain"`
	Company               *CompanyProfile `json:"company,omitempty"`
	ICPScore              *ICPScore       `json:"icpScore,omitempty"`
	SustainabilitySignals []string        `json:"sustainabilitySignals,omitempty"`
	Stakeholders          []Stakeholder   `json:"stakeholders,omitempty"`
	TalkingPoints         []string        `json:"talkingPoints,omitempty"`
}

// PushRequestFromBrief builds a push request carrying every section of b.
func PushRequestFromBrief(b *Brief) PushRequest {
	company := b.Company
	score := b.ICPScore
	return PushRequest{
		Domain:                b.Domain,
		Company:               &company,
		ICPScore:              &score,
		SustainabilitySignals: b.SustainabilitySignals,
		Stakeholders:          b.Stakeholders,
		TalkingPoints:         b.TalkingPoints,
	}
}

// CreatedContact records a contact created by a push.
type CreatedContact struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// SkippedContact records a stakeholder that was not created, and why.
type SkippedContact struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PushResult is the outcome ledger of a push.
type PushResult struct {
	CompanyID       string           `json:"companyId"`
	CompanyCreated  bool             `json:"companyCreated"`
	HubSpotURL      string           `json:"hubspotUrl"`
	NoteID          string           `json:"noteId,omitempty"`
	CreatedContacts []CreatedContact `json:"createdContacts"`
	SkippedContacts []SkippedContact `json:"skippedContacts"`
}
