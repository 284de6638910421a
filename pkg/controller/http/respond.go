package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/errutil"
)

// respondJSON writes v as a JSON response
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// respondError maps use case sentinels to HTTP statuses and writes the error
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrGrantNotFound),
		errors.Is(err, usecase.ErrMilestoneNotFound),
		errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, usecase.ErrOrgNotFound):
		return http.StatusNotFound

	case errors.Is(err, usecase.ErrFeedUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, usecase.ErrCalendarDisabled):
		return http.StatusForbidden

	case errors.Is(err, usecase.ErrBuiltinMilestone),
		errors.Is(err, usecase.ErrInvalidArgument),
		errors.Is(err, usecase.ErrImportHeader):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses a request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "invalid JSON request body")
	}
	return nil
}
