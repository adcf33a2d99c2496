package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"iwannacontrib/internal/bootstrap"
	"iwannacontrib/internal/bootstrap/logging"
	"iwannacontrib/internal/errs"
	githubinfra "iwannacontrib/internal/infrastructure/github"
	sqliterepo "iwannacontrib/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "iwannacontrib/internal/infrastructure/persistence/sqlite/uow"
	"iwannacontrib/internal/usecase/triage"
)

// withApp bootstraps config, database and the triage service for a command,
// and closes the database when the command returns.
func withApp(run func(cmd *cobra.Command, app *bootstrap.App, svc *triage.Service) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		app, err := bootstrap.New(ctx, cfgFile)
		if err != nil {
			return errs.Wrap(err, "bootstrap application")
		}
		defer func() {
			if err := app.Close(context.Background()); err != nil {
				logging.Error(ctx, "close application failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		fetcher, err := githubinfra.NewFetcher(ctx, app.Config.GitHub)
		if err != nil {
			return errs.Wrap(err, "create github client")
		}

		svc := triage.NewService(
			sqliterepo.NewTriageRepository(app.DB),
			sqliteuow.NewUnitOfWork(app.DB),
			fetcher,
		)

		if err := run(cmd, app, svc); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}
