package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/errutil"
)

func orgIDParam(r *http.Request) types.OrgID {
	return types.OrgID(chi.URLParam(r, "orgID"))
}

func grantIDParam(r *http.Request) types.GrantID {
	return types.GrantID(chi.URLParam(r, "grantID"))
}

type saveGrantRequest struct {
	Title       string   `json:"title"`
	Agency      string   `json:"agency"`
	Summary     string   `json:"summary"`
	URL         string   `json:"url"`
	Stage       string   `json:"stage"`
	Priority    string   `json:"priority"`
	Notes       string   `json:"notes"`
	Attachments []string `json:"attachments"`
	StageNote   string   `json:"stage_note"`
}

func (s *Server) saveGrant(w http.ResponseWriter, r *http.Request) {
	var req saveGrantRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("title is required"), http.StatusBadRequest)
		return
	}

	g, err := s.uc.Grant.SaveGrant(r.Context(), usecase.SaveGrantInput{
		OrgID:       orgIDParam(r),
		Title:       req.Title,
		Agency:      req.Agency,
		Summary:     req.Summary,
		URL:         req.URL,
		Stage:       types.Stage(req.Stage),
		Priority:    types.Priority(req.Priority),
		Notes:       req.Notes,
		Attachments: req.Attachments,
		StageNote:   req.StageNote,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, toGrantResponse(g))
}

func (s *Server) listGrants(w http.ResponseWriter, r *http.Request) {
	grants, err := s.uc.Grant.ListGrants(r.Context(), orgIDParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := struct {
		Grants []grantResponse `json:"grants"`
	}{Grants: make([]grantResponse, 0, len(grants))}
	for _, g := range grants {
		resp.Grants = append(resp.Grants, toGrantResponse(g))
	}

	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getGrant(w http.ResponseWriter, r *http.Request) {
	g, err := s.uc.Grant.GetGrant(r.Context(), orgIDParam(r), grantIDParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}

type updateDetailsRequest struct {
	Title       *string  `json:"title"`
	Agency      *string  `json:"agency"`
	Summary     *string  `json:"summary"`
	URL         *string  `json:"url"`
	Priority    *string  `json:"priority"`
	Notes       *string  `json:"notes"`
	Attachments []string `json:"attachments"`
}

func (s *Server) updateDetails(w http.ResponseWriter, r *http.Request) {
	var req updateDetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	input := usecase.UpdateDetailsInput{
		Title:       req.Title,
		Agency:      req.Agency,
		Summary:     req.Summary,
		URL:         req.URL,
		Notes:       req.Notes,
		Attachments: req.Attachments,
	}
	if req.Priority != nil {
		p, err := types.ParsePriority(*req.Priority)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		input.Priority = &p
	}

	g, err := s.uc.Grant.UpdateDetails(r.Context(), orgIDParam(r), grantIDParam(r), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}

func (s *Server) deleteGrant(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Grant.DeleteGrant(r.Context(), orgIDParam(r), grantIDParam(r)); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeStageRequest struct {
	Stage string `json:"stage"`
	Note  string `json:"note"`
}

func (s *Server) changeStage(w http.ResponseWriter, r *http.Request) {
	var req changeStageRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	stage, err := types.ParseStage(req.Stage)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	g, err := s.uc.Grant.ChangeStage(r.Context(), orgIDParam(r), grantIDParam(r), stage, req.Note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}
