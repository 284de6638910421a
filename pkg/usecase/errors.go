package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrGrantNotFound     = errors.New("grant not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrOrgNotFound       = errors.New("organization not found")

	// Validation
	ErrInvalidArgument = errors.New("invalid argument")

	// Milestone rules
	ErrBuiltinMilestone = errors.New("built-in milestones cannot be removed")

	// Calendar feed
	ErrFeedUnauthorized = errors.New("calendar feed key is missing or invalid")
	ErrCalendarDisabled = errors.New("calendar feed is disabled for this organization")

	// Import
	ErrImportHeader = errors.New("CSV header must include a title column")
)
