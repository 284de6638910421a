package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/cli/config"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/safe"
)

func cmdImport() *cli.Command {
	var (
		orgID   string
		path    string
		repoCfg config.Repository
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "org",
			Usage:       "Organization ID to import grants into",
			Required:    true,
			Sources:     cli.EnvVars("GRANT_TRACKER_IMPORT_ORG"),
			Destination: &orgID,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to the CSV file of grant opportunities",
			Required:    true,
			Destination: &path,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "import",
		Usage: "Import grant opportunities from a CSV file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			f, err := os.Open(path)
			if err != nil {
				return goerr.Wrap(err, "failed to open CSV file", goerr.V("path", path))
			}
			defer safe.Close(ctx, f)

			uc := usecase.New(repo)

			summary, err := uc.Import.ImportCSV(ctx, types.OrgID(orgID), f)
			if err != nil {
				return goerr.Wrap(err, "import failed")
			}

			color.New(color.FgGreen, color.Bold).Printf("✓ Imported %d grants\n", summary.Imported)
			if summary.Skipped > 0 {
				color.New(color.FgYellow).Printf("⚠ Skipped %d rows\n", summary.Skipped)
				for _, rowErr := range summary.Errors {
					color.New(color.FgYellow).Printf("  line %d: %s\n", rowErr.Line, rowErr.Message)
				}
			}

			return nil
		},
	}
}
