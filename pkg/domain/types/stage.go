package types

import "fmt"

// Stage represents a grant's position in the pipeline
type Stage string

const (
	StageResearching Stage = "researching"
	StageDrafting    Stage = "drafting"
	StageSubmitted   Stage = "submitted"
	StageAwarded     Stage = "awarded"
	StageDeclined    Stage = "declined"
)

// AllStages returns all valid stages in pipeline order
func AllStages() []Stage {
	return []Stage{
		StageResearching,
		StageDrafting,
		StageSubmitted,
		StageAwarded,
		StageDeclined,
	}
}

// IsValid checks if the stage is valid
func (s Stage) IsValid() bool {
	switch s {
	case StageResearching,
		StageDrafting,
		StageSubmitted,
		StageAwarded,
		StageDeclined:
		return true
	default:
		return false
	}
}

// Normalize returns the stage, treating empty as StageResearching.
func (s Stage) Normalize() Stage {
	if s == "" {
		return StageResearching
	}
	return s
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// ParseStage parses a string into a Stage
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("invalid stage: %s", s)
	}
	return stage, nil
}
