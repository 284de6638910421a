package http

import (
	"net/http"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/errutil"
)

func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.uc.Grant.GetPreferences(r.Context(), orgIDParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toPreferencesResponse(prefs))
}

type putPreferencesRequest struct {
	Name             string   `json:"name"`
	States           []string `json:"states"`
	FocusAreas       []string `json:"focus_areas"`
	Timezone         string   `json:"timezone"`
	ReminderChannels []string `json:"reminder_channels"`
	UnsubscribeURL   string   `json:"unsubscribe_url"`
	CalendarEnabled  bool     `json:"calendar_enabled"`
	CalendarSecret   string   `json:"calendar_secret"`
}

func (s *Server) putPreferences(w http.ResponseWriter, r *http.Request) {
	var req putPreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	channels, err := parseChannels(req.ReminderChannels)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	orgID := orgIDParam(r)
	prefs := &model.OrgPreferences{
		OrgID:            orgID,
		Name:             req.Name,
		States:           req.States,
		FocusAreas:       req.FocusAreas,
		Timezone:         req.Timezone,
		ReminderChannels: channels,
		UnsubscribeURL:   req.UnsubscribeURL,
		CalendarEnabled:  req.CalendarEnabled,
		CalendarSecret:   req.CalendarSecret,
	}

	// Keep the stored secret when the request leaves it blank
	if req.CalendarSecret == "" {
		if existing, err := s.uc.Grant.GetPreferences(r.Context(), orgID); err == nil {
			prefs.CalendarSecret = existing.CalendarSecret
		}
	}

	if err := s.uc.Grant.UpdatePreferences(r.Context(), prefs); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toPreferencesResponse(prefs))
}

func (s *Server) importCSV(w http.ResponseWriter, r *http.Request) {
	summary, err := s.uc.Import.ImportCSV(r.Context(), orgIDParam(r), r.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}

	type rowError struct {
		Line    int    `json:"line"`
		Message string `json:"message"`
	}
	resp := struct {
		Imported int        `json:"imported"`
		Skipped  int        `json:"skipped"`
		Errors   []rowError `json:"errors,omitempty"`
	}{Imported: summary.Imported, Skipped: summary.Skipped}
	for _, e := range summary.Errors {
		resp.Errors = append(resp.Errors, rowError{Line: e.Line, Message: e.Message})
	}

	respondJSON(w, r, http.StatusOK, resp)
}
