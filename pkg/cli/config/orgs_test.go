package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/cli/config"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

func writeOrgsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgs.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644)).Required()
	return path
}

func TestOrgsConfigure(t *testing.T) {
	t.Run("valid configuration loads in file order", func(t *testing.T) {
		path := writeOrgsFile(t, `
[[org]]
id = "acme"
name = "Acme Nonprofit"
states = ["CA", "OR"]
focus_areas = ["education", "health"]
timezone = "America/Los_Angeles"
reminder_channels = ["email", "sms"]
unsubscribe_url = "https://example.org/unsubscribe"
calendar_enabled = true
calendar_secret = "s3cret"

[[org]]
id = "beta"
name = "Beta Foundation"
reminder_channels = ["email"]
`)

		registry, err := config.NewOrgsForTest(path).Configure()
		gt.NoError(t, err).Required()

		orgs := registry.List()
		gt.Array(t, orgs).Length(2)
		gt.Value(t, orgs[0].OrgID).Equal(types.OrgID("acme"))
		gt.Value(t, orgs[1].OrgID).Equal(types.OrgID("beta"))

		acme, err := registry.Get(types.OrgID("acme"))
		gt.NoError(t, err).Required()
		gt.Value(t, acme.Name).Equal("Acme Nonprofit")
		gt.Value(t, acme.Timezone).Equal("America/Los_Angeles")
		gt.Array(t, acme.ReminderChannels).Length(2)
		gt.Value(t, acme.ReminderChannels[1]).Equal(types.ChannelSMS)
		gt.Bool(t, acme.CalendarEnabled).True()
		gt.Value(t, acme.CalendarSecret).Equal("s3cret")
	})

	t.Run("empty path yields an empty registry", func(t *testing.T) {
		registry, err := config.NewOrgsForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, registry.List()).Length(0)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := config.NewOrgsForTest("/nonexistent/orgs.toml").Configure()
		gt.Error(t, err)
	})

	t.Run("invalid channel is rejected", func(t *testing.T) {
		path := writeOrgsFile(t, `
[[org]]
id = "acme"
name = "Acme Nonprofit"
reminder_channels = ["fax"]
`)
		_, err := config.NewOrgsForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("org without a name is rejected", func(t *testing.T) {
		path := writeOrgsFile(t, `
[[org]]
id = "acme"
`)
		_, err := config.NewOrgsForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("malformed TOML is rejected", func(t *testing.T) {
		path := writeOrgsFile(t, `[[org] id = `)
		_, err := config.NewOrgsForTest(path).Configure()
		gt.Error(t, err)
	})
}
