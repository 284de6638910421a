package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a client
// is configured. The error is returned as-is for the caller to propagate.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, err, msg)
	capture(err)

	return err
}

// HandleHTTP logs the error and writes an HTTP error response. Server-side
// (5xx) errors are additionally reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, err, "HTTP error")
	if statusCode >= http.StatusInternalServerError {
		capture(err)
	}

	http.Error(w, err.Error(), statusCode)
}

func logError(ctx context.Context, err error, msg string) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}
}

func capture(err error) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CaptureException(err)
}
