package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ramonehamilton/ygo-catalog/internal/api/response"
	"github.com/ramonehamilton/ygo-catalog/internal/settings"
)

// LanguageService reads and stores the language preference.
type LanguageService interface {
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, tag string) (string, error)
	ResetLanguage(ctx context.Context) (string, error)
}

// SettingsHandler handles settings-related API requests.
type SettingsHandler struct {
	svc LanguageService
}

// NewSettingsHandler creates a new SettingsHandler. A nil service answers 503.
func NewSettingsHandler(svc LanguageService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// LanguageResponse is the language preference with the accepted values.
type LanguageResponse struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

var errNoSettings = errors.New("settings storage is not available")

// GetLanguage returns the language preference.
func (h *SettingsHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		response.ServiceUnavailable(w, errNoSettings)
		return
	}

	lang, err := h.svc.Language(r.Context())
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to get language: %w", err))
		return
	}
	response.Success(w, LanguageResponse{Language: lang, Supported: settings.SupportedLanguages})
}

// SetLanguage stores {"language": tag}.
func (h *SettingsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		response.ServiceUnavailable(w, errNoSettings)
		return
	}

	var body struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	lang, err := h.svc.SetLanguage(r.Context(), body.Language)
	if errors.Is(err, settings.ErrUnsupportedLanguage) {
		response.BadRequest(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to save language: %w", err))
		return
	}
	response.Success(w, LanguageResponse{Language: lang, Supported: settings.SupportedLanguages})
}

// ResetLanguage forgets the stored preference and returns the default.
func (h *SettingsHandler) ResetLanguage(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		response.ServiceUnavailable(w, errNoSettings)
		return
	}

	lang, err := h.svc.ResetLanguage(r.Context())
	if err != nil {
		response.InternalError(w, fmt.Errorf("failed to reset language: %w", err))
		return
	}
	response.Success(w, LanguageResponse{Language: lang, Supported: settings.SupportedLanguages})
}
