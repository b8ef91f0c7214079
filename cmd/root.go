// Package cmd provides the command-line interface of the migration tool.
package cmd

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/examforge/attemptid-migration/config"
	"github.com/examforge/attemptid-migration/db"
	"github.com/examforge/attemptid-migration/migrator"
)

var rootCmd = &cobra.Command{
	Use:          "attemptid-migration",
	Short:        "Add, backfill and index test_attempts.attempt_id",
	Long:         "One-shot idempotent migration that adds the attempt_id column to test_attempts, backfills it from the first results_data element carrying one, and creates the lookup index. All steps run in a single transaction.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, dbConn, closeDb, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDb()
		log.Info().Str("schema", configuration.DBSchema).Msg("executing attempt_id migration")
		err = migrator.NewAttemptIDMigrator().Run(cmd.Context(), dbConn, configuration.DBSchema)
		if err != nil {
			log.Error().Err(err).Msg("attempt_id migration failed")
			return err
		}
		log.Info().Msg("attempt_id migration executed successfully")
		return nil
	},
}

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func connect(ctx context.Context) (config.Configuration, *sqlx.DB, func(), error) {
	configuration, err := config.ReadConfiguration()
	if err != nil {
		return configuration, nil, nil, err
	}
	configureLogger(configuration.LogLevel)
	postgres := db.NewPostgres(ctx, &configuration)
	err = postgres.Connect()
	if err != nil {
		log.Error().Err(err).Msg("connecting to postgres failed")
		return configuration, nil, nil, err
	}
	dbConn, err := postgres.GetDbConnection()
	if err != nil {
		_ = postgres.Close()
		return configuration, nil, nil, err
	}
	return configuration, dbConn, func() { _ = postgres.Close() }, nil
}

func configureLogger(level zerolog.Level) {
	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = "2006-01-02T15:04:05Z07:00"
	log.Logger = zerolog.New(consoleWriter).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
}
