package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/SamWylde/Grant-Tracker-sub000/pkg/controller/http"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/repository/memory"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
)

const orgPath = "/api/orgs/acme"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := memory.New()
	uc := usecase.New(repo)

	err := uc.Grant.UpdatePreferences(context.Background(), &model.OrgPreferences{
		OrgID:            types.OrgID("acme"),
		Name:             "Acme Nonprofit",
		Timezone:         "UTC",
		ReminderChannels: []types.Channel{types.ChannelEmail},
		UnsubscribeURL:   "https://example.org/unsubscribe",
		CalendarEnabled:  true,
		CalendarSecret:   "feed-secret",
	})
	gt.NoError(t, err).Required()

	srv := httptest.NewServer(httpctrl.New(uc))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}

	req, err := http.NewRequest(method, url, &buf)
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(out)).Required()
}

type grantBody struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Stage      string `json:"stage"`
	Priority   string `json:"priority"`
	Milestones []struct {
		ID                 string `json:"id"`
		Label              string `json:"label"`
		Type               string `json:"type"`
		RemindersEnabled   bool   `json:"reminders_enabled"`
		ScheduledReminders []struct {
			ID         string `json:"id"`
			Channel    string `json:"channel"`
			OffsetDays int    `json:"offset_days"`
		} `json:"scheduled_reminders"`
	} `json:"milestones"`
	Tasks []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"tasks"`
	History []struct {
		Stage string `json:"stage"`
		Note  string `json:"note"`
	} `json:"history"`
}

func createGrant(t *testing.T, srv *httptest.Server) grantBody {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants", map[string]any{
		"title": "Community Health Initiative",
	})
	gt.Number(t, resp.StatusCode).Equal(http.StatusCreated)

	var g grantBody
	decodeBody(t, resp, &g)
	return g
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
}

func TestGrantEndpoints(t *testing.T) {
	t.Run("create provisions built-in milestones", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		gt.Value(t, g.Stage).Equal("researching")
		gt.Value(t, g.Priority).Equal("medium")
		gt.Array(t, g.Milestones).Length(3)
		gt.Array(t, g.History).Length(1)
	})

	t.Run("create without title is rejected", func(t *testing.T) {
		srv := newTestServer(t)

		resp := doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants", map[string]any{})
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("get unknown grant is 404", func(t *testing.T) {
		srv := newTestServer(t)

		resp := doJSON(t, http.MethodGet, srv.URL+orgPath+"/grants/"+string(types.NewGrantID()), nil)
		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
	})

	t.Run("stage change appends history", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		resp := doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants/"+g.ID+"/stage", map[string]any{
			"stage": "drafting",
			"note":  "started writing",
		})
		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

		var updated grantBody
		decodeBody(t, resp, &updated)
		gt.Value(t, updated.Stage).Equal("drafting")
		gt.Array(t, updated.History).Length(2)
		gt.Value(t, updated.History[1].Note).Equal("started writing")
	})

	t.Run("invalid stage is 400", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		resp := doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants/"+g.ID+"/stage", map[string]any{
			"stage": "shipped",
		})
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("delete then get is 404", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		resp := doJSON(t, http.MethodDelete, srv.URL+orgPath+"/grants/"+g.ID, nil)
		gt.Number(t, resp.StatusCode).Equal(http.StatusNoContent)

		resp = doJSON(t, http.MethodGet, srv.URL+orgPath+"/grants/"+g.ID, nil)
		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestMilestoneEndpoints(t *testing.T) {
	t.Run("enabling reminders with a due date builds the schedule", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		msID := g.Milestones[1].ID
		resp := doJSON(t, http.MethodPatch, srv.URL+orgPath+"/grants/"+g.ID+"/milestones/"+msID, map[string]any{
			"due_date":          "2024-12-31",
			"reminders_enabled": true,
		})
		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

		var updated grantBody
		decodeBody(t, resp, &updated)
		gt.Array(t, updated.Milestones[1].ScheduledReminders).Length(6)
		gt.Value(t, updated.Milestones[1].ScheduledReminders[0].Channel).Equal("email")
	})

	t.Run("removing a built-in milestone is 400", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		resp := doJSON(t, http.MethodDelete, srv.URL+orgPath+"/grants/"+g.ID+"/milestones/"+g.Milestones[0].ID, nil)
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("custom milestone round-trip", func(t *testing.T) {
		srv := newTestServer(t)
		g := createGrant(t, srv)

		resp := doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants/"+g.ID+"/milestones", map[string]any{
			"label":    "Site visit",
			"due_date": "2024-09-15",
		})
		gt.Number(t, resp.StatusCode).Equal(http.StatusCreated)

		var updated grantBody
		decodeBody(t, resp, &updated)
		gt.Array(t, updated.Milestones).Length(4)
		gt.Value(t, updated.Milestones[3].Type).Equal("custom")

		resp = doJSON(t, http.MethodDelete, srv.URL+orgPath+"/grants/"+g.ID+"/milestones/"+updated.Milestones[3].ID, nil)
		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
	})
}

func TestTaskEndpoints(t *testing.T) {
	srv := newTestServer(t)
	g := createGrant(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants/"+g.ID+"/tasks", map[string]any{
		"label": "Collect board letters",
	})
	gt.Number(t, resp.StatusCode).Equal(http.StatusCreated)

	var withTask grantBody
	decodeBody(t, resp, &withTask)
	gt.Array(t, withTask.Tasks).Length(1)
	gt.Value(t, withTask.Tasks[0].Status).Equal("pending")

	resp = doJSON(t, http.MethodPost, srv.URL+orgPath+"/grants/"+g.ID+"/tasks/"+withTask.Tasks[0].ID+"/toggle", nil)
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var toggled grantBody
	decodeBody(t, resp, &toggled)
	gt.Value(t, toggled.Tasks[0].Status).Equal("completed")
}

func TestPreferencesEndpoints(t *testing.T) {
	t.Run("response never exposes the calendar secret", func(t *testing.T) {
		srv := newTestServer(t)

		resp := doJSON(t, http.MethodGet, srv.URL+orgPath+"/preferences", nil)
		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

		var raw map[string]any
		decodeBody(t, resp, &raw)
		_, exposed := raw["calendar_secret"]
		gt.Bool(t, exposed).False()
		gt.Value(t, raw["name"]).Equal("Acme Nonprofit")
	})

	t.Run("blank secret in update keeps the stored one", func(t *testing.T) {
		srv := newTestServer(t)

		resp := doJSON(t, http.MethodPut, srv.URL+orgPath+"/preferences", map[string]any{
			"name":              "Acme Nonprofit",
			"reminder_channels": []string{"email"},
			"calendar_enabled":  true,
		})
		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

		// The original feed secret still authorizes the calendar
		feedResp, err := http.Get(srv.URL + "/calendar/acme.ics?key=feed-secret")
		gt.NoError(t, err).Required()
		defer feedResp.Body.Close()
		gt.Number(t, feedResp.StatusCode).Equal(http.StatusOK)
	})

	t.Run("unknown channel is rejected", func(t *testing.T) {
		srv := newTestServer(t)

		resp := doJSON(t, http.MethodPut, srv.URL+orgPath+"/preferences", map[string]any{
			"name":              "Acme Nonprofit",
			"reminder_channels": []string{"fax"},
		})
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestCalendarEndpoint(t *testing.T) {
	t.Run("valid key serves the feed", func(t *testing.T) {
		srv := newTestServer(t)
		createGrant(t, srv)

		resp, err := http.Get(srv.URL + "/calendar/acme.ics?key=feed-secret")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Bool(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar")).True()

		var body bytes.Buffer
		_, err = body.ReadFrom(resp.Body)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(body.String(), "BEGIN:VCALENDAR")).True()
	})

	t.Run("wrong key is 401", func(t *testing.T) {
		srv := newTestServer(t)

		resp, err := http.Get(srv.URL + "/calendar/acme.ics?key=wrong")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusUnauthorized)
	})

	t.Run("missing key is 401", func(t *testing.T) {
		srv := newTestServer(t)

		resp, err := http.Get(srv.URL + "/calendar/acme.ics")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusUnauthorized)
	})

	t.Run("unknown org is 401", func(t *testing.T) {
		srv := newTestServer(t)

		resp, err := http.Get(srv.URL + "/calendar/ghost.ics?key=feed-secret")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusUnauthorized)
	})
}

func TestImportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	csv := "title,agency\nYouth Literacy Fund,Dept of Education\n,missing title\n"
	req, err := http.NewRequest(http.MethodPost, srv.URL+orgPath+"/import", strings.NewReader(csv))
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "text/csv")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var summary struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
		Errors   []struct {
			Line int `json:"line"`
		} `json:"errors"`
	}
	decodeBody(t, resp, &summary)
	gt.Number(t, summary.Imported).Equal(1)
	gt.Number(t, summary.Skipped).Equal(1)
	gt.Array(t, summary.Errors).Length(1)
}
