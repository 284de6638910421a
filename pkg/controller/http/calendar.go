package http

import (
	"net/http"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/safe"
)

// calendarFeed serves the per-organization ICS document. Authorization is a
// shared secret in the key query parameter, checked by the use case; failures
// are explicit rejections, never an empty feed.
func (s *Server) calendarFeed(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")

	feed, err := s.uc.Calendar.Feed(r.Context(), orgIDParam(r), key)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="grant-milestones.ics"`)
	safe.Write(r.Context(), w, []byte(feed))
}
