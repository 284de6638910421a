package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// Orgs holds the CLI flag for the organization configuration file
type Orgs struct {
	path string
}

// Flags returns CLI flags for organization configuration
func (o *Orgs) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "orgs-config",
			Usage:       "Path to TOML file describing organizations",
			Sources:     cli.EnvVars("GRANT_TRACKER_ORGS_CONFIG"),
			Destination: &o.path,
		},
	}
}

// orgEntry is one [[org]] block in the configuration file
type orgEntry struct {
	ID               string   `toml:"id"`
	Name             string   `toml:"name"`
	States           []string `toml:"states"`
	FocusAreas       []string `toml:"focus_areas"`
	Timezone         string   `toml:"timezone"`
	ReminderChannels []string `toml:"reminder_channels"`
	UnsubscribeURL   string   `toml:"unsubscribe_url"`
	CalendarEnabled  bool     `toml:"calendar_enabled"`
	CalendarSecret   string   `toml:"calendar_secret"`
}

type orgsFile struct {
	Orgs []orgEntry `toml:"org"`
}

// Configure loads and validates the organization registry. An unset path
// yields an empty registry; organizations can then be managed through the
// preferences API alone.
func (o *Orgs) Configure() (*model.OrgRegistry, error) {
	registry := model.NewOrgRegistry()
	if o.path == "" {
		return registry, nil
	}

	data, err := os.ReadFile(o.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read orgs config", goerr.V("path", o.path))
	}

	var file orgsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse orgs config", goerr.V("path", o.path))
	}

	for _, entry := range file.Orgs {
		channels := make([]types.Channel, 0, len(entry.ReminderChannels))
		for _, name := range entry.ReminderChannels {
			ch, err := types.ParseChannel(name)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid reminder channel in orgs config",
					goerr.V("org_id", entry.ID))
			}
			channels = append(channels, ch)
		}

		prefs := &model.OrgPreferences{
			OrgID:            types.OrgID(entry.ID),
			Name:             entry.Name,
			States:           entry.States,
			FocusAreas:       entry.FocusAreas,
			Timezone:         entry.Timezone,
			ReminderChannels: channels,
			UnsubscribeURL:   entry.UnsubscribeURL,
			CalendarEnabled:  entry.CalendarEnabled,
			CalendarSecret:   entry.CalendarSecret,
		}
		if err := prefs.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid org in orgs config", goerr.V("org_id", entry.ID))
		}

		registry.Register(prefs)
	}

	return registry, nil
}
