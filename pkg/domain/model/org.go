package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// OrgPreferences holds per-organization settings consumed by the reminder
// scheduler (timezone, default channels, unsubscribe URL) and the calendar
// feed (timezone, name, shared secret).
type OrgPreferences struct {
	OrgID            types.OrgID
	Name             string
	States           []string
	FocusAreas       []string
	Timezone         string
	ReminderChannels []types.Channel
	UnsubscribeURL   string
	CalendarEnabled  bool
	CalendarSecret   string `masq:"secret"`
}

// Validate checks the preferences for structural problems
func (p *OrgPreferences) Validate() error {
	if p.OrgID == "" {
		return goerr.New("org ID is required")
	}
	if p.Name == "" {
		return goerr.New("org name is required", goerr.V("org_id", p.OrgID))
	}
	for _, ch := range p.ReminderChannels {
		if !ch.IsValid() {
			return goerr.New("invalid reminder channel",
				goerr.V("org_id", p.OrgID), goerr.V("channel", ch))
		}
	}
	return nil
}

// ErrOrgNotFound is returned when an organization is not found in the registry
var ErrOrgNotFound = goerr.New("organization not found")

// OrgRegistry holds organization configurations loaded at process start.
// It holds settings only, no repository or use case instances.
type OrgRegistry struct {
	entries map[types.OrgID]*OrgPreferences
	order   []types.OrgID // preserves registration order
}

// NewOrgRegistry creates a new empty OrgRegistry
func NewOrgRegistry() *OrgRegistry {
	return &OrgRegistry{
		entries: make(map[types.OrgID]*OrgPreferences),
	}
}

// Register adds an organization to the registry
func (r *OrgRegistry) Register(prefs *OrgPreferences) {
	if _, exists := r.entries[prefs.OrgID]; !exists {
		r.order = append(r.order, prefs.OrgID)
	}
	r.entries[prefs.OrgID] = prefs
}

// Get retrieves an organization's preferences by ID
func (r *OrgRegistry) Get(orgID types.OrgID) (*OrgPreferences, error) {
	prefs, ok := r.entries[orgID]
	if !ok {
		return nil, goerr.Wrap(ErrOrgNotFound, "organization not found",
			goerr.V("org_id", orgID))
	}
	return prefs, nil
}

// List returns all registered organizations in registration order
func (r *OrgRegistry) List() []*OrgPreferences {
	result := make([]*OrgPreferences, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id])
	}
	return result
}
