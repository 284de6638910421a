package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// importConcurrency bounds parallel persistence writes during an import
const importConcurrency = 4

// ImportUseCase turns a CSV of opportunities into saved grants. Each valid
// row goes through the same SaveGrant path as manual entry, so built-in
// milestones and the initial history entry are provisioned identically.
type ImportUseCase struct {
	grants *GrantUseCase
}

func NewImportUseCase(grants *GrantUseCase) *ImportUseCase {
	return &ImportUseCase{grants: grants}
}

// RowError describes why a single CSV row was skipped
type RowError struct {
	Line    int
	Message string
}

// ImportSummary reports the outcome of one import run
type ImportSummary struct {
	Imported int
	Skipped  int
	Errors   []RowError
}

// ImportCSV reads rows of the form
//
//	title,agency,summary,url,stage,priority,notes
//
// (header required, column order free, title mandatory). Unknown stage or
// priority values fall back to the defaults rather than failing the row;
// rows without a title are skipped and reported. Valid rows are saved with
// bounded concurrency. A failed row never aborts the rest of the import.
func (u *ImportUseCase) ImportCSV(ctx context.Context, orgID types.OrgID, r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, goerr.Wrap(ErrImportHeader, "missing title column", goerr.V("header", header))
	}

	summary := &ImportSummary{}

	type row struct {
		line  int
		input SaveGrantInput
	}
	var rows []row

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		title := field("title")
		if title == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, RowError{Line: line, Message: "title is required"})
			continue
		}

		// Unrecognized stage/priority values degrade to the defaults
		stage, _ := types.ParseStage(strings.ToLower(field("stage")))
		priority, _ := types.ParsePriority(strings.ToLower(field("priority")))

		rows = append(rows, row{
			line: line,
			input: SaveGrantInput{
				OrgID:     orgID,
				Title:     title,
				Agency:    field("agency"),
				Summary:   field("summary"),
				URL:       field("url"),
				Stage:     stage.Normalize(),
				Priority:  priority.Normalize(),
				Notes:     field("notes"),
				StageNote: "Imported from CSV",
			},
		})
	}

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(importConcurrency)

	for _, rw := range rows {
		eg.Go(func() error {
			_, err := u.grants.SaveGrant(egCtx, rw.input)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, RowError{
					Line:    rw.line,
					Message: fmt.Sprintf("failed to save: %v", err),
				})
				return nil
			}
			summary.Imported++
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "import aborted")
	}

	return summary, nil
}
