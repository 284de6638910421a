package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

func TestStage(t *testing.T) {
	t.Run("all stages are valid", func(t *testing.T) {
		for _, s := range types.AllStages() {
			gt.Bool(t, s.IsValid()).True()
		}
		gt.Array(t, types.AllStages()).Length(5)
	})

	t.Run("unknown stage is invalid", func(t *testing.T) {
		gt.Bool(t, types.Stage("shipped").IsValid()).False()
		gt.Bool(t, types.Stage("").IsValid()).False()
	})

	t.Run("empty normalizes to researching", func(t *testing.T) {
		gt.Value(t, types.Stage("").Normalize()).Equal(types.StageResearching)
		gt.Value(t, types.StageAwarded.Normalize()).Equal(types.StageAwarded)
	})

	t.Run("parse rejects unknown values", func(t *testing.T) {
		stage, err := types.ParseStage("submitted")
		gt.NoError(t, err)
		gt.Value(t, stage).Equal(types.StageSubmitted)

		_, err = types.ParseStage("bogus")
		gt.Error(t, err)
	})
}

func TestPriority(t *testing.T) {
	t.Run("empty normalizes to medium", func(t *testing.T) {
		gt.Value(t, types.Priority("").Normalize()).Equal(types.PriorityMedium)
	})

	t.Run("parse", func(t *testing.T) {
		p, err := types.ParsePriority("high")
		gt.NoError(t, err)
		gt.Value(t, p).Equal(types.PriorityHigh)

		_, err = types.ParsePriority("urgent")
		gt.Error(t, err)
	})
}

func TestMilestoneType(t *testing.T) {
	t.Run("builtin set excludes custom", func(t *testing.T) {
		builtins := types.BuiltinMilestoneTypes()
		gt.Array(t, builtins).Length(3)
		for _, b := range builtins {
			gt.Bool(t, b.IsBuiltin()).True()
		}
		gt.Bool(t, types.MilestoneCustom.IsBuiltin()).False()
	})

	t.Run("labels", func(t *testing.T) {
		gt.Value(t, types.MilestoneLOI.Label()).Equal("Letter of Intent")
		gt.Value(t, types.MilestoneApplication.Label()).Equal("Application")
		gt.Value(t, types.MilestoneReport.Label()).Equal("Report")
		gt.Value(t, types.MilestoneCustom.Label()).Equal("Custom")
	})
}

func TestChannel(t *testing.T) {
	gt.Bool(t, types.ChannelEmail.IsValid()).True()
	gt.Bool(t, types.ChannelSMS.IsValid()).True()
	gt.Bool(t, types.Channel("fax").IsValid()).False()

	ch, err := types.ParseChannel("sms")
	gt.NoError(t, err)
	gt.Value(t, ch).Equal(types.ChannelSMS)

	_, err = types.ParseChannel("carrier-pigeon")
	gt.Error(t, err)
}

func TestTaskStatus(t *testing.T) {
	t.Run("toggle flips between pending and completed", func(t *testing.T) {
		gt.Value(t, types.TaskStatusPending.Toggle()).Equal(types.TaskStatusCompleted)
		gt.Value(t, types.TaskStatusCompleted.Toggle()).Equal(types.TaskStatusPending)
	})

	t.Run("empty status toggles to completed", func(t *testing.T) {
		gt.Value(t, types.TaskStatus("").Toggle()).Equal(types.TaskStatusCompleted)
	})
}
