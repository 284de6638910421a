package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/errutil"
)

func milestoneIDParam(r *http.Request) types.MilestoneID {
	return types.MilestoneID(chi.URLParam(r, "milestoneID"))
}

func parseChannels(names []string) ([]types.Channel, error) {
	if names == nil {
		return nil, nil
	}
	channels := make([]types.Channel, 0, len(names))
	for _, name := range names {
		ch, err := types.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

type addMilestoneRequest struct {
	Label            string   `json:"label"`
	DueDate          string   `json:"due_date"`
	RemindersEnabled bool     `json:"reminders_enabled"`
	Channels         []string `json:"channels"`
}

func (s *Server) addMilestone(w http.ResponseWriter, r *http.Request) {
	var req addMilestoneRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	due, err := parseDate(req.DueDate)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	channels, err := parseChannels(req.Channels)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	g, err := s.uc.Grant.AddMilestone(r.Context(), orgIDParam(r), grantIDParam(r), usecase.AddMilestoneInput{
		Label:            req.Label,
		DueDate:          due,
		RemindersEnabled: req.RemindersEnabled,
		Channels:         channels,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toGrantResponse(g))
}

type updateMilestoneRequest struct {
	Label            *string  `json:"label"`
	DueDate          *string  `json:"due_date"`
	ClearDueDate     bool     `json:"clear_due_date"`
	RemindersEnabled *bool    `json:"reminders_enabled"`
	Channels         []string `json:"channels"`
}

func (s *Server) updateMilestone(w http.ResponseWriter, r *http.Request) {
	var req updateMilestoneRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	input := usecase.UpdateMilestoneInput{
		Label:            req.Label,
		ClearDueDate:     req.ClearDueDate,
		RemindersEnabled: req.RemindersEnabled,
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		input.DueDate = due
	}
	channels, err := parseChannels(req.Channels)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	input.Channels = channels

	g, err := s.uc.Grant.UpdateMilestone(r.Context(), orgIDParam(r), grantIDParam(r), milestoneIDParam(r), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}

func (s *Server) removeMilestone(w http.ResponseWriter, r *http.Request) {
	g, err := s.uc.Grant.RemoveMilestone(r.Context(), orgIDParam(r), grantIDParam(r), milestoneIDParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}
