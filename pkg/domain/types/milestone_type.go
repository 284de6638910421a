package types

import "fmt"

// MilestoneType represents the kind of milestone on a grant
type MilestoneType string

const (
	MilestoneLOI         MilestoneType = "loi"
	MilestoneApplication MilestoneType = "application"
	MilestoneReport      MilestoneType = "report"
	MilestoneCustom      MilestoneType = "custom"
)

// BuiltinMilestoneTypes returns the milestone types provisioned
// automatically for every grant. Built-in milestones cannot be removed.
func BuiltinMilestoneTypes() []MilestoneType {
	return []MilestoneType{
		MilestoneLOI,
		MilestoneApplication,
		MilestoneReport,
	}
}

// IsValid checks if the milestone type is valid
func (m MilestoneType) IsValid() bool {
	switch m {
	case MilestoneLOI, MilestoneApplication, MilestoneReport, MilestoneCustom:
		return true
	default:
		return false
	}
}

// IsBuiltin reports whether the type is provisioned at grant-save time
func (m MilestoneType) IsBuiltin() bool {
	switch m {
	case MilestoneLOI, MilestoneApplication, MilestoneReport:
		return true
	default:
		return false
	}
}

// Label returns the default human-readable label for the type
func (m MilestoneType) Label() string {
	switch m {
	case MilestoneLOI:
		return "Letter of Intent"
	case MilestoneApplication:
		return "Application"
	case MilestoneReport:
		return "Report"
	default:
		return "Custom"
	}
}

// String returns the string representation of the milestone type
func (m MilestoneType) String() string {
	return string(m)
}

// ParseMilestoneType parses a string into a MilestoneType
func ParseMilestoneType(s string) (MilestoneType, error) {
	m := MilestoneType(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid milestone type: %s", s)
	}
	return m, nil
}
