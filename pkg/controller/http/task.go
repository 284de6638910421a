package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/errutil"
)

func taskIDParam(r *http.Request) types.TaskID {
	return types.TaskID(chi.URLParam(r, "taskID"))
}

type addTaskRequest struct {
	Label         string `json:"label"`
	DueDate       string `json:"due_date"`
	AssigneeEmail string `json:"assignee_email"`
	AssigneeID    string `json:"assignee_id"`
	AssigneeName  string `json:"assignee_name"`
	CreatedByID   string `json:"created_by_id"`
	CreatedByName string `json:"created_by_name"`
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	due, err := parseDate(req.DueDate)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	g, err := s.uc.Grant.AddTask(r.Context(), orgIDParam(r), grantIDParam(r), usecase.AddTaskInput{
		Label:         req.Label,
		DueDate:       due,
		AssigneeEmail: req.AssigneeEmail,
		AssigneeID:    req.AssigneeID,
		AssigneeName:  req.AssigneeName,
		CreatedByID:   req.CreatedByID,
		CreatedByName: req.CreatedByName,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toGrantResponse(g))
}

type updateTaskRequest struct {
	Label         *string `json:"label"`
	DueDate       *string `json:"due_date"`
	ClearDueDate  bool    `json:"clear_due_date"`
	AssigneeEmail *string `json:"assignee_email"`
	AssigneeID    *string `json:"assignee_id"`
	AssigneeName  *string `json:"assignee_name"`
	Status        *string `json:"status"`
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	input := usecase.UpdateTaskInput{
		Label:         req.Label,
		ClearDueDate:  req.ClearDueDate,
		AssigneeEmail: req.AssigneeEmail,
		AssigneeID:    req.AssigneeID,
		AssigneeName:  req.AssigneeName,
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		input.DueDate = due
	}
	if req.Status != nil {
		status, err := types.ParseTaskStatus(*req.Status)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		input.Status = &status
	}

	g, err := s.uc.Grant.UpdateTask(r.Context(), orgIDParam(r), grantIDParam(r), taskIDParam(r), input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}

func (s *Server) removeTask(w http.ResponseWriter, r *http.Request) {
	g, err := s.uc.Grant.RemoveTask(r.Context(), orgIDParam(r), grantIDParam(r), taskIDParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	g, err := s.uc.Grant.ToggleTask(r.Context(), orgIDParam(r), grantIDParam(r), taskIDParam(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toGrantResponse(g))
}
