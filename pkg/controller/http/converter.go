package http

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
)

// Response shapes for the JSON API. The domain model stays tag-free; this
// layer owns the wire field names.

type grantResponse struct {
	ID          string              `json:"id"`
	OrgID       string              `json:"org_id"`
	Title       string              `json:"title"`
	Agency      string              `json:"agency,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	URL         string              `json:"url,omitempty"`
	Stage       string              `json:"stage"`
	Priority    string              `json:"priority"`
	Notes       string              `json:"notes,omitempty"`
	Attachments []string            `json:"attachments,omitempty"`
	History     []historyResponse   `json:"history"`
	Milestones  []milestoneResponse `json:"milestones"`
	Tasks       []taskResponse      `json:"tasks"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type historyResponse struct {
	Stage     string    `json:"stage"`
	ChangedAt time.Time `json:"changed_at"`
	Note      string    `json:"note,omitempty"`
}

type milestoneResponse struct {
	ID                 string             `json:"id"`
	Label              string             `json:"label"`
	Type               string             `json:"type"`
	DueDate            string             `json:"due_date,omitempty"`
	RemindersEnabled   bool               `json:"reminders_enabled"`
	ReminderChannels   []string           `json:"reminder_channels"`
	ScheduledReminders []reminderResponse `json:"scheduled_reminders"`
}

type reminderResponse struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	OffsetDays int       `json:"offset_days"`
	SendAt     time.Time `json:"send_at"`
	Subject    string    `json:"subject,omitempty"`
	Preview    string    `json:"preview"`
}

type taskResponse struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	DueDate       string `json:"due_date,omitempty"`
	AssigneeEmail string `json:"assignee_email,omitempty"`
	AssigneeID    string `json:"assignee_id,omitempty"`
	AssigneeName  string `json:"assignee_name,omitempty"`
	CreatedByID   string `json:"created_by_id,omitempty"`
	CreatedByName string `json:"created_by_name,omitempty"`
	Status        string `json:"status"`
}

type preferencesResponse struct {
	OrgID            string   `json:"org_id"`
	Name             string   `json:"name"`
	States           []string `json:"states,omitempty"`
	FocusAreas       []string `json:"focus_areas,omitempty"`
	Timezone         string   `json:"timezone,omitempty"`
	ReminderChannels []string `json:"reminder_channels"`
	UnsubscribeURL   string   `json:"unsubscribe_url,omitempty"`
	CalendarEnabled  bool     `json:"calendar_enabled"`
}

func toGrantResponse(g *model.Grant) grantResponse {
	resp := grantResponse{
		ID:          g.ID.String(),
		OrgID:       g.OrgID.String(),
		Title:       g.Title,
		Agency:      g.Agency,
		Summary:     g.Summary,
		URL:         g.URL,
		Stage:       g.Stage.String(),
		Priority:    g.Priority.String(),
		Notes:       g.Notes,
		Attachments: g.Attachments,
		History:     make([]historyResponse, 0, len(g.History)),
		Milestones:  make([]milestoneResponse, 0, len(g.Milestones)),
		Tasks:       make([]taskResponse, 0, len(g.Tasks)),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}

	for _, h := range g.History {
		resp.History = append(resp.History, historyResponse{
			Stage:     h.Stage.String(),
			ChangedAt: h.ChangedAt,
			Note:      h.Note,
		})
	}
	for _, m := range g.Milestones {
		resp.Milestones = append(resp.Milestones, toMilestoneResponse(m))
	}
	for _, t := range g.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}

	return resp
}

func toMilestoneResponse(m model.Milestone) milestoneResponse {
	resp := milestoneResponse{
		ID:                 m.ID.String(),
		Label:              m.Label,
		Type:               m.Type.String(),
		DueDate:            formatDate(m.DueDate),
		RemindersEnabled:   m.RemindersEnabled,
		ReminderChannels:   make([]string, 0, len(m.ReminderChannels)),
		ScheduledReminders: make([]reminderResponse, 0, len(m.ScheduledReminders)),
	}
	for _, ch := range m.ReminderChannels {
		resp.ReminderChannels = append(resp.ReminderChannels, ch.String())
	}
	for _, e := range m.ScheduledReminders {
		resp.ScheduledReminders = append(resp.ScheduledReminders, reminderResponse{
			ID:         e.ID,
			Channel:    e.Channel.String(),
			OffsetDays: e.OffsetDays,
			SendAt:     e.SendAt,
			Subject:    e.Subject,
			Preview:    e.Preview,
		})
	}
	return resp
}

func toTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:            t.ID.String(),
		Label:         t.Label,
		DueDate:       formatDate(t.DueDate),
		AssigneeEmail: t.AssigneeEmail,
		AssigneeID:    t.AssigneeID,
		AssigneeName:  t.AssigneeName,
		CreatedByID:   t.CreatedByID,
		CreatedByName: t.CreatedByName,
		Status:        t.Status.Normalize().String(),
	}
}

func toPreferencesResponse(p *model.OrgPreferences) preferencesResponse {
	channels := make([]string, 0, len(p.ReminderChannels))
	for _, ch := range p.ReminderChannels {
		channels = append(channels, ch.String())
	}
	// CalendarSecret is deliberately absent from the response shape
	return preferencesResponse{
		OrgID:            p.OrgID.String(),
		Name:             p.Name,
		States:           p.States,
		FocusAreas:       p.FocusAreas,
		Timezone:         p.Timezone,
		ReminderChannels: channels,
		UnsubscribeURL:   p.UnsubscribeURL,
		CalendarEnabled:  p.CalendarEnabled,
	}
}

func formatDate(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// parseDate parses a "YYYY-MM-DD" value, returning nil for an empty string
func parseDate(s string) (*civil.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
