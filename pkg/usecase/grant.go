package usecase

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/service/reminder"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/async"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/logging"
)

// GrantUseCase is the single writer for grant state. Every mutation runs a
// load-transform-save cycle inside a per-grant critical section, mirrors the
// result to the repository, and recomputes derived reminder schedules where
// milestone inputs changed.
type GrantUseCase struct {
	repo       interfaces.Repository
	dispatcher interfaces.ReminderDispatcher
	now        func() time.Time
	locks      *grantLocks
}

func NewGrantUseCase(repo interfaces.Repository, dispatcher interfaces.ReminderDispatcher, now func() time.Time) *GrantUseCase {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &GrantUseCase{
		repo:       repo,
		dispatcher: dispatcher,
		now:        now,
		locks:      newGrantLocks(),
	}
}

// SaveGrantInput carries the fields of a discovered opportunity, manual
// entry, or CSV row being saved as a grant.
type SaveGrantInput struct {
	OrgID       types.OrgID
	Title       string
	Agency      string
	Summary     string
	URL         string
	Stage       types.Stage
	Priority    types.Priority
	Notes       string
	Attachments []string
	StageNote   string
}

// SaveGrant creates a grant: the three built-in milestones are provisioned
// once here (reminders off, channels from the org default set) and the
// initial stage history entry is appended.
func (u *GrantUseCase) SaveGrant(ctx context.Context, input SaveGrantInput) (*model.Grant, error) {
	prefs := u.preferences(ctx, input.OrgID)

	g := &model.Grant{
		OrgID:       input.OrgID,
		Title:       input.Title,
		Agency:      input.Agency,
		Summary:     input.Summary,
		URL:         input.URL,
		Stage:       input.Stage.Normalize(),
		Priority:    input.Priority.Normalize(),
		Notes:       input.Notes,
		Attachments: input.Attachments,
		Milestones:  model.NewBuiltinMilestones(prefs.ReminderChannels),
	}
	g.History = []model.StageHistoryEntry{{
		Stage:     g.Stage,
		ChangedAt: u.now(),
		Note:      input.StageNote,
	}}

	if err := g.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid grant", goerr.V("cause", err.Error()))
	}

	created, err := u.repo.Grant().Create(ctx, g)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save grant", goerr.V("org_id", input.OrgID))
	}

	return created, nil
}

// GetGrant retrieves a grant by ID
func (u *GrantUseCase) GetGrant(ctx context.Context, orgID types.OrgID, id types.GrantID) (*model.Grant, error) {
	g, err := u.repo.Grant().Get(ctx, orgID, id)
	if err != nil {
		return nil, mapGrantErr(err, id)
	}
	return g, nil
}

// ListGrants retrieves all grants for an organization
func (u *GrantUseCase) ListGrants(ctx context.Context, orgID types.OrgID) ([]*model.Grant, error) {
	grants, err := u.repo.Grant().List(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list grants", goerr.V("org_id", orgID))
	}
	return grants, nil
}

// DeleteGrant removes a grant
func (u *GrantUseCase) DeleteGrant(ctx context.Context, orgID types.OrgID, id types.GrantID) error {
	unlock := u.locks.Lock(id)
	defer unlock()

	if err := u.repo.Grant().Delete(ctx, orgID, id); err != nil {
		return mapGrantErr(err, id)
	}
	return nil
}

// UpdateDetailsInput updates descriptive grant fields; nil means unchanged
type UpdateDetailsInput struct {
	Title       *string
	Agency      *string
	Summary     *string
	URL         *string
	Priority    *types.Priority
	Notes       *string
	Attachments []string
}

// UpdateDetails edits a grant's descriptive fields
func (u *GrantUseCase) UpdateDetails(ctx context.Context, orgID types.OrgID, id types.GrantID, input UpdateDetailsInput) (*model.Grant, error) {
	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		if input.Title != nil {
			g.Title = *input.Title
		}
		if input.Agency != nil {
			g.Agency = *input.Agency
		}
		if input.Summary != nil {
			g.Summary = *input.Summary
		}
		if input.URL != nil {
			g.URL = *input.URL
		}
		if input.Priority != nil {
			if !input.Priority.IsValid() {
				return goerr.Wrap(ErrInvalidArgument, "invalid priority", goerr.V("priority", *input.Priority))
			}
			g.Priority = *input.Priority
		}
		if input.Notes != nil {
			g.Notes = *input.Notes
		}
		if input.Attachments != nil {
			g.Attachments = input.Attachments
		}
		if err := g.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidArgument, "invalid grant", goerr.V("cause", err.Error()))
		}
		return nil
	})
}

// ChangeStage moves a grant to a new stage and appends a history entry.
// Every stage may move to every other stage; grants get reopened and
// reclassified, so there is no pipeline guard here.
func (u *GrantUseCase) ChangeStage(ctx context.Context, orgID types.OrgID, id types.GrantID, stage types.Stage, note string) (*model.Grant, error) {
	if !stage.IsValid() {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid stage", goerr.V("stage", stage))
	}

	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		g.ChangeStage(stage, note, u.now())
		return nil
	})
}

// AddMilestoneInput describes a user-created (Custom) milestone
type AddMilestoneInput struct {
	Label            string
	DueDate          *civil.Date
	RemindersEnabled bool
	Channels         []types.Channel
}

// AddMilestone appends a Custom milestone. Built-in milestone types exist
// from grant-save time and cannot be added again.
func (u *GrantUseCase) AddMilestone(ctx context.Context, orgID types.OrgID, id types.GrantID, input AddMilestoneInput) (*model.Grant, error) {
	if input.Label == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "milestone label is required")
	}
	for _, ch := range input.Channels {
		if !ch.IsValid() {
			return nil, goerr.Wrap(ErrInvalidArgument, "invalid reminder channel", goerr.V("channel", ch))
		}
	}

	prefs := u.preferences(ctx, orgID)
	var added *model.Milestone

	updated, err := u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		m := model.Milestone{
			ID:               types.NewMilestoneID(),
			Label:            input.Label,
			Type:             types.MilestoneCustom,
			DueDate:          input.DueDate,
			RemindersEnabled: input.RemindersEnabled,
			ReminderChannels: input.Channels,
		}
		refreshSchedule(prefs, g.Title, &m)
		g.Milestones = append(g.Milestones, m)
		added = &g.Milestones[len(g.Milestones)-1]
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.dispatch(ctx, updated, added)
	return updated, nil
}

// UpdateMilestoneInput edits milestone fields; nil means unchanged.
// ClearDueDate removes the due date (which empties the schedule).
type UpdateMilestoneInput struct {
	Label            *string
	DueDate          *civil.Date
	ClearDueDate     bool
	RemindersEnabled *bool
	Channels         []types.Channel
}

// UpdateMilestone edits a milestone and recomputes its reminder schedule.
// The schedule is always rebuilt in full from the current inputs with the
// fixed T-30/14/7/3/1/day-of offsets; when the milestone has no due date,
// reminders are off, or no channel is selected, it is cleared to empty.
func (u *GrantUseCase) UpdateMilestone(ctx context.Context, orgID types.OrgID, id types.GrantID, milestoneID types.MilestoneID, input UpdateMilestoneInput) (*model.Grant, error) {
	for _, ch := range input.Channels {
		if !ch.IsValid() {
			return nil, goerr.Wrap(ErrInvalidArgument, "invalid reminder channel", goerr.V("channel", ch))
		}
	}

	prefs := u.preferences(ctx, orgID)
	var edited *model.Milestone

	updated, err := u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		m := g.Milestone(milestoneID)
		if m == nil {
			return goerr.Wrap(ErrMilestoneNotFound, "milestone not found",
				goerr.V("milestone_id", milestoneID))
		}

		if input.Label != nil && *input.Label != "" {
			m.Label = *input.Label
		}
		if input.ClearDueDate {
			m.DueDate = nil
		} else if input.DueDate != nil {
			m.DueDate = input.DueDate
		}
		if input.RemindersEnabled != nil {
			m.RemindersEnabled = *input.RemindersEnabled
		}
		if input.Channels != nil {
			m.ReminderChannels = input.Channels
		}

		refreshSchedule(prefs, g.Title, m)
		edited = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.dispatch(ctx, updated, edited)
	return updated, nil
}

// RemoveMilestone deletes a Custom milestone. Built-in milestones (LOI,
// Application, Report) can only be edited, never removed.
func (u *GrantUseCase) RemoveMilestone(ctx context.Context, orgID types.OrgID, id types.GrantID, milestoneID types.MilestoneID) (*model.Grant, error) {
	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		m := g.Milestone(milestoneID)
		if m == nil {
			return goerr.Wrap(ErrMilestoneNotFound, "milestone not found",
				goerr.V("milestone_id", milestoneID))
		}
		if m.Type.IsBuiltin() {
			return goerr.Wrap(ErrBuiltinMilestone, "cannot remove built-in milestone",
				goerr.V("milestone_id", milestoneID), goerr.V("type", m.Type))
		}
		g.RemoveMilestone(milestoneID)
		return nil
	})
}

// AddTaskInput describes a new checklist task
type AddTaskInput struct {
	Label         string
	DueDate       *civil.Date
	AssigneeEmail string
	AssigneeID    string
	AssigneeName  string
	CreatedByID   string
	CreatedByName string
}

// AddTask appends a checklist task to a grant
func (u *GrantUseCase) AddTask(ctx context.Context, orgID types.OrgID, id types.GrantID, input AddTaskInput) (*model.Grant, error) {
	if input.Label == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "task label is required")
	}

	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		g.Tasks = append(g.Tasks, model.Task{
			ID:            types.NewTaskID(),
			Label:         input.Label,
			DueDate:       input.DueDate,
			AssigneeEmail: input.AssigneeEmail,
			AssigneeID:    input.AssigneeID,
			AssigneeName:  input.AssigneeName,
			CreatedByID:   input.CreatedByID,
			CreatedByName: input.CreatedByName,
			Status:        types.TaskStatusPending,
		})
		return nil
	})
}

// UpdateTaskInput edits task fields; nil means unchanged
type UpdateTaskInput struct {
	Label         *string
	DueDate       *civil.Date
	ClearDueDate  bool
	AssigneeEmail *string
	AssigneeID    *string
	AssigneeName  *string
	Status        *types.TaskStatus
}

// UpdateTask edits a checklist task
func (u *GrantUseCase) UpdateTask(ctx context.Context, orgID types.OrgID, id types.GrantID, taskID types.TaskID, input UpdateTaskInput) (*model.Grant, error) {
	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		t := g.Task(taskID)
		if t == nil {
			return goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V("task_id", taskID))
		}

		if input.Label != nil && *input.Label != "" {
			t.Label = *input.Label
		}
		if input.ClearDueDate {
			t.DueDate = nil
		} else if input.DueDate != nil {
			t.DueDate = input.DueDate
		}
		if input.AssigneeEmail != nil {
			t.AssigneeEmail = *input.AssigneeEmail
		}
		if input.AssigneeID != nil {
			t.AssigneeID = *input.AssigneeID
		}
		if input.AssigneeName != nil {
			t.AssigneeName = *input.AssigneeName
		}
		if input.Status != nil {
			if !input.Status.IsValid() {
				return goerr.Wrap(ErrInvalidArgument, "invalid task status", goerr.V("status", *input.Status))
			}
			t.Status = *input.Status
		}
		return nil
	})
}

// RemoveTask deletes a checklist task
func (u *GrantUseCase) RemoveTask(ctx context.Context, orgID types.OrgID, id types.GrantID, taskID types.TaskID) (*model.Grant, error) {
	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		if !g.RemoveTask(taskID) {
			return goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V("task_id", taskID))
		}
		return nil
	})
}

// ToggleTask flips a task between pending and completed. Task status is
// independent of the grant's stage and milestones.
func (u *GrantUseCase) ToggleTask(ctx context.Context, orgID types.OrgID, id types.GrantID, taskID types.TaskID) (*model.Grant, error) {
	return u.mutate(ctx, orgID, id, func(g *model.Grant) error {
		t := g.Task(taskID)
		if t == nil {
			return goerr.Wrap(ErrTaskNotFound, "task not found", goerr.V("task_id", taskID))
		}
		t.Status = t.Status.Toggle()
		return nil
	})
}

// mutate runs one load-transform-save cycle under the grant's lock
func (u *GrantUseCase) mutate(ctx context.Context, orgID types.OrgID, id types.GrantID, fn func(g *model.Grant) error) (*model.Grant, error) {
	unlock := u.locks.Lock(id)
	defer unlock()

	g, err := u.repo.Grant().Get(ctx, orgID, id)
	if err != nil {
		return nil, mapGrantErr(err, id)
	}

	if err := fn(g); err != nil {
		return nil, err
	}

	updated, err := u.repo.Grant().Update(ctx, g)
	if err != nil {
		return nil, mapGrantErr(err, id)
	}

	return updated, nil
}

// preferences loads org preferences, degrading to safe defaults when they are
// missing or the repository misbehaves. A preferences problem must never
// block a grant edit; worst case, reminders fall back to email in UTC.
func (u *GrantUseCase) preferences(ctx context.Context, orgID types.OrgID) *model.OrgPreferences {
	prefs, err := u.repo.Org().GetPreferences(ctx, orgID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Warn("failed to load org preferences, using defaults",
				"org_id", orgID, "error", err.Error())
		}
		return &model.OrgPreferences{
			OrgID:            orgID,
			ReminderChannels: []types.Channel{types.ChannelEmail},
		}
	}
	return prefs
}

// refreshSchedule recomputes a milestone's derived reminder schedule in full
func refreshSchedule(prefs *model.OrgPreferences, grantTitle string, m *model.Milestone) {
	if !m.WantsReminders() {
		m.ScheduledReminders = []model.ReminderEntry{}
		return
	}

	m.ScheduledReminders = reminder.BuildSchedule(reminder.ScheduleInput{
		GrantTitle:     grantTitle,
		MilestoneLabel: m.Label,
		DueDate:        *m.DueDate,
		Channels:       m.ReminderChannels,
		Offsets:        model.DefaultReminderOffsets,
		Timezone:       prefs.Timezone,
		UnsubscribeURL: prefs.UnsubscribeURL,
	})
}

// dispatch hands a recomputed schedule to the delivery collaborator. It runs
// detached: dispatcher failures are logged and never touch store state.
func (u *GrantUseCase) dispatch(ctx context.Context, g *model.Grant, m *model.Milestone) {
	if u.dispatcher == nil || m == nil || len(m.ScheduledReminders) == 0 {
		return
	}

	orgID, grantID, milestoneID := g.OrgID, g.ID, m.ID
	entries := append([]model.ReminderEntry(nil), m.ScheduledReminders...)

	async.Dispatch(ctx, func(ctx context.Context) error {
		return u.dispatcher.Enqueue(ctx, orgID, grantID, milestoneID, entries)
	})
}

func mapGrantErr(err error, id types.GrantID) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrGrantNotFound, "grant not found", goerr.V("grant_id", id))
	}
	return goerr.Wrap(err, "grant repository failure", goerr.V("grant_id", id))
}
