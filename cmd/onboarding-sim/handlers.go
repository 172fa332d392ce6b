package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wrale/onboarding-sim/internal/authflow"
	"github.com/wrale/onboarding-sim/internal/configstore"
	"github.com/wrale/onboarding-sim/internal/environment"
)

// Health check handler
func (s *server) handleHealth() http.HandlerFunc {
	type healthResponse struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:  "ok",
			Version: Version,
		}

		if err := s.flow.CheckHealth(r.Context()); err != nil {
			s.logger.Error().Err(err).Msg("health check failed")
			resp.Status = "degraded"
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		writeJSON(w, resp)
	}
}

// Environment listing handler
func (s *server) handleEnvironments() http.HandlerFunc {
	type response struct {
		Environments []environment.Environment `json:"environments"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, response{Environments: environment.All()})
	}
}

// Configuration registration handler
func (s *server) handleRegisterConfig() http.HandlerFunc {
	type request struct {
		KeyID          string `json:"keyId"`
		Environment    string `json:"environment"`
		OrganisationID string `json:"organisationId"`
		OTAC           string `json:"otac"`
		ClientID       string `json:"clientId"`
		Audience       string `json:"audience"`
	}
	type response struct {
		Message string                       `json:"message"`
		Config  *configstore.SanitizedConfig `json:"config"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		stored, err := s.flow.RegisterConfig(r.Context(), &configstore.DeviceConfig{
			KeyID:          req.KeyID,
			Environment:    req.Environment,
			OrganisationID: req.OrganisationID,
			OTAC:           req.OTAC,
			ClientID:       req.ClientID,
			Audience:       req.Audience,
		})
		if err != nil {
			s.writeFlowError(w, err, "Unable to persist configuration.")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(response{
			Message: "Configuration stored.",
			Config:  stored,
		}); err != nil {
			s.logger.Error().Err(err).Msg("encoding response")
		}
	}
}

// Configuration listing handler
func (s *server) handleListConfigs() http.HandlerFunc {
	type response struct {
		Configs []*configstore.SanitizedConfig `json:"configs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := s.flow.ListConfigs(r.Context())
		if err != nil {
			s.writeFlowError(w, err, "Unable to read configs.")
			return
		}
		writeJSON(w, response{Configs: configs})
	}
}

// Configuration deletion handler
func (s *server) handleDeleteConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyID := strings.TrimSpace(chi.URLParam(r, "keyID"))

		if err := s.flow.DeleteConfig(r.Context(), keyID); err != nil {
			s.writeFlowError(w, err, "Unable to delete configuration.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Simulated login redirect handler: issues an authorization and redirects
// back to the caller with code and state.
func (s *server) handleAuthorize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyID := r.URL.Query().Get("keyId")
		state := r.URL.Query().Get("state")

		redirect, err := s.flow.Authorize(r.Context(), keyID, state, refererOrigin(r))
		if err != nil {
			s.writeFlowError(w, err, "Unable to issue authorization.")
			return
		}

		http.Redirect(w, r, redirect.RedirectURL, http.StatusFound)
	}
}

// User token exchange handler
func (s *server) handleUserToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authflow.UserTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		token, err := s.flow.ExchangeUserToken(r.Context(), req)
		if err != nil {
			s.writeFlowError(w, err, "Unable to exchange authorization code.")
			return
		}
		writeJSON(w, token)
	}
}

// B2B token issuance handler
func (s *server) handleB2BToken() http.HandlerFunc {
	type request struct {
		KeyID string `json:"keyId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		tokens, err := s.flow.IssueB2B(r.Context(), req.KeyID)
		if err != nil {
			s.writeFlowError(w, err, "Unable to issue B2B tokens.")
			return
		}
		writeJSON(w, tokens)
	}
}

// Final token exchange handler
func (s *server) handleFinalExchange() http.HandlerFunc {
	type request struct {
		KeyID     string `json:"keyId"`
		UserToken string `json:"userToken"`
		B2BToken  string `json:"b2bToken"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		final, err := s.flow.FinalExchange(r.Context(), req.KeyID, req.UserToken, req.B2BToken)
		if err != nil {
			s.writeFlowError(w, err, "Unable to exchange tokens.")
			return
		}
		writeJSON(w, final)
	}
}

// writeFlowError maps flow errors onto stable status codes and short
// messages. Internal detail is logged, never returned to the caller.
func (s *server) writeFlowError(w http.ResponseWriter, err error, serverMessage string) {
	var verr *authflow.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, authflow.ErrConfigNotFound):
		writeMessage(w, http.StatusNotFound, "Configuration not found.")
	case errors.Is(err, authflow.ErrInvalidAuthorization):
		writeMessage(w, http.StatusBadRequest, "Authorization code is invalid or expired.")
	default:
		s.logger.Error().Err(err).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, serverMessage)
	}
}

// refererOrigin extracts the origin of the caller's Referer header, or ""
// when it is absent or unparseable.
func refererOrigin(r *http.Request) string {
	referer := r.Referer()
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "error encoding response", http.StatusInternalServerError)
		return
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
