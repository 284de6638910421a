package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
)

func TestImportCSV(t *testing.T) {
	t.Run("valid rows become grants with built-in milestones", func(t *testing.T) {
		uc := newTestUseCases(t)
		ctx := context.Background()

		csv := strings.Join([]string{
			"title,agency,stage,priority,notes",
			"Youth Literacy Fund,Dept of Education,drafting,high,promising",
			"Food Security Program,USDA,submitted,low,",
		}, "\n")

		summary, err := uc.Import.ImportCSV(ctx, testOrgID, strings.NewReader(csv))
		gt.NoError(t, err).Required()

		gt.Number(t, summary.Imported).Equal(2)
		gt.Number(t, summary.Skipped).Equal(0)
		gt.Array(t, summary.Errors).Length(0)

		grants, err := uc.Grant.ListGrants(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Array(t, grants).Length(2)

		for _, g := range grants {
			gt.Array(t, g.Milestones).Length(3)
			gt.Array(t, g.History).Length(1)
			gt.Value(t, g.History[0].Note).Equal("Imported from CSV")
		}
	})

	t.Run("column order does not matter", func(t *testing.T) {
		uc := newTestUseCases(t)
		ctx := context.Background()

		csv := "priority,title\nhigh,Reordered Grant\n"
		summary, err := uc.Import.ImportCSV(ctx, testOrgID, strings.NewReader(csv))
		gt.NoError(t, err).Required()
		gt.Number(t, summary.Imported).Equal(1)

		grants, err := uc.Grant.ListGrants(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Value(t, grants[0].Title).Equal("Reordered Grant")
		gt.Value(t, grants[0].Priority).Equal(types.PriorityHigh)
	})

	t.Run("rows without a title are skipped and reported", func(t *testing.T) {
		uc := newTestUseCases(t)
		ctx := context.Background()

		csv := "title,agency\nValid Grant,Agency A\n,Agency B\n"
		summary, err := uc.Import.ImportCSV(ctx, testOrgID, strings.NewReader(csv))
		gt.NoError(t, err).Required()

		gt.Number(t, summary.Imported).Equal(1)
		gt.Number(t, summary.Skipped).Equal(1)
		gt.Array(t, summary.Errors).Length(1)
		gt.Number(t, summary.Errors[0].Line).Equal(3)
	})

	t.Run("unknown stage and priority degrade to defaults", func(t *testing.T) {
		uc := newTestUseCases(t)
		ctx := context.Background()

		csv := "title,stage,priority\nDegraded Grant,shipped,urgent\n"
		summary, err := uc.Import.ImportCSV(ctx, testOrgID, strings.NewReader(csv))
		gt.NoError(t, err).Required()
		gt.Number(t, summary.Imported).Equal(1)

		grants, err := uc.Grant.ListGrants(ctx, testOrgID)
		gt.NoError(t, err).Required()
		gt.Value(t, grants[0].Stage).Equal(types.StageResearching)
		gt.Value(t, grants[0].Priority).Equal(types.PriorityMedium)
	})

	t.Run("missing title column fails the whole import", func(t *testing.T) {
		uc := newTestUseCases(t)

		csv := "agency,notes\nAgency A,whatever\n"
		_, err := uc.Import.ImportCSV(context.Background(), testOrgID, strings.NewReader(csv))
		gt.Bool(t, errors.Is(err, usecase.ErrImportHeader)).True()
	})

	t.Run("header-only input imports nothing", func(t *testing.T) {
		uc := newTestUseCases(t)

		summary, err := uc.Import.ImportCSV(context.Background(), testOrgID, strings.NewReader("title\n"))
		gt.NoError(t, err).Required()
		gt.Number(t, summary.Imported).Equal(0)
		gt.Number(t, summary.Skipped).Equal(0)
	})
}
