package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/cli/config"
	httpctrl "github.com/SamWylde/Grant-Tracker-sub000/pkg/controller/http"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/model"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/service/dispatch"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/logging"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/safe"
)

func cmdServe(version string) *cli.Command {
	var (
		addr    string
		repoCfg config.Repository
		orgsCfg config.Orgs
		sentry  config.Sentry
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("GRANT_TRACKER_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, orgsCfg.Flags()...)
	flags = append(flags, sentry.Flags()...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the grant tracker HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			sentryClose, err := sentry.Configure(version)
			if err != nil {
				return err
			}
			defer sentryClose()

			registry, err := orgsCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			if err := seedOrgs(ctx, repo, registry); err != nil {
				return err
			}

			uc := usecase.New(repo,
				usecase.WithDispatcher(dispatch.NewLogger()),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received signal, shutting down", "signal", sig.String())
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server")
			}

			logger.Info("Server stopped")
			return nil
		},
	}
}

// seedOrgs stores preferences from the orgs config file for organizations
// that do not yet exist in the repository. Existing preferences are left
// untouched so that API-side edits survive restarts.
func seedOrgs(ctx context.Context, repo interfaces.Repository, registry *model.OrgRegistry) error {
	for _, prefs := range registry.List() {
		_, err := repo.Org().GetPreferences(ctx, prefs.OrgID)
		if err == nil {
			continue
		}
		if !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to check org preferences", goerr.V("org_id", prefs.OrgID))
		}

		if err := repo.Org().PutPreferences(ctx, prefs); err != nil {
			return goerr.Wrap(err, "failed to seed org preferences", goerr.V("org_id", prefs.OrgID))
		}
		logging.Default().Info("Seeded org preferences", "org_id", prefs.OrgID, "name", prefs.Name)
	}

	return nil
}
