package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/examforge/attemptid-migration/migrator"
)

var verifyCmd = &cobra.Command{
	Use:          "verify",
	Short:        "Report whether backfilled attempt_id values are valid UUIDs",
	Long:         "Read-only check ahead of the manual attempt_id column conversion to uuid: counts populated values and reports any that would not survive the cast.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, dbConn, closeDb, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDb()
		report, err := migrator.NewAttemptIDMigrator().VerifyAttemptIDs(cmd.Context(), dbConn, configuration.DBSchema)
		if err != nil {
			return err
		}
		log.Info().
			Int("populated", report.Populated).
			Int("validUuids", report.ValidUUIDs).
			Int("invalid", report.Invalid).
			Msg("attempt_id verification report")
		if report.Invalid > 0 {
			log.Warn().Strs("samples", report.InvalidSamples).Msg("attempt_id values not convertible to uuid, column conversion is not safe yet")
		}
		return nil
	},
}
