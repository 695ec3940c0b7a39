package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/account-brief/internal/apperr"
	"github.com/sells-group/account-brief/internal/model"
)

type domainRequest struct {
	Domain string `json:"domain"`
}

type pushResponse struct {
	Success         bool        `json:"success"`
	CompanyID       string      `json:"companyId"`
	CompanyCreated  bool        `json:"companyCreated"`
	HubSpotURL      string      `json:"hubspotUrl"`
	ContactsCreated int         `json:"contactsCreated"`
	ContactsSkipped int         `json:"contactsSkipped"`
	Details         pushDetails `json:"details"`
}

type pushDetails struct {
	CreatedContacts []model.CreatedContact `json:"createdContacts"`
	SkippedContacts []model.SkippedContact `json:"skippedContacts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerateBrief(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := decodeDomain(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.creds.RequireGenerate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	b, err := s.briefs.Generate(r.Context(), req.Domain)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if err := decodeDomain(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.creds.RequireSearch(); err != nil {
		s.writeError(w, r, err)
		return
	}

	summary, err := s.briefs.Search(r.Context(), req.Domain)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handlePushHubSpot(w http.ResponseWriter, r *http.Request) {
	var req model.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperr.NewValidationError("body", "Invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Domain) == "" {
		s.writeError(w, r, apperr.NewValidationError("domain", "Domain is required"))
		return
	}
	if err := s.creds.RequirePush(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.crm.Push(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pushResponse{
		Success:         true,
		CompanyID:       res.CompanyID,
		CompanyCreated:  res.CompanyCreated,
		HubSpotURL:      res.HubSpotURL,
		ContactsCreated: len(res.CreatedContacts),
		ContactsSkipped: len(res.SkippedContacts),
		Details: pushDetails{
			CreatedContacts: res.CreatedContacts,
			SkippedContacts: res.SkippedContacts,
		},
	})
}

func decodeDomain(r *http.Request, req *domainRequest) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return apperr.NewValidationError("body", "Invalid JSON body")
	}
	if strings.TrimSpace(req.Domain) == "" {
		return apperr.NewValidationError("domain", "Domain is required")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger(r).Error("api: request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": errorMessage(err)})
}

// errorMessage returns the message of the first typed error in the chain,
// without the wrap prefixes added on the way up.
func errorMessage(err error) string {
	var (
		ve *apperr.ValidationError
		ce *apperr.ConfigurationError
		se *apperr.SynthesisParseError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &ce):
		return ce.Error()
	}
	if pe, ok := apperr.AsProvider(err); ok {
		return pe.Error()
	}
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}
