package usecase

import (
	"time"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
)

type UseCases struct {
	repo       interfaces.Repository
	dispatcher interfaces.ReminderDispatcher
	now        func() time.Time

	Grant    *GrantUseCase
	Import   *ImportUseCase
	Calendar *CalendarUseCase
}

type Option func(*UseCases)

// WithDispatcher sets the reminder dispatch collaborator. Without one,
// recomputed schedules stay attached to milestones but are not handed off.
func WithDispatcher(d interfaces.ReminderDispatcher) Option {
	return func(uc *UseCases) {
		uc.dispatcher = d
	}
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Grant = NewGrantUseCase(repo, uc.dispatcher, uc.now)
	uc.Import = NewImportUseCase(uc.Grant)
	uc.Calendar = NewCalendarUseCase(repo)

	return uc
}
