package migrator

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/examforge/attemptid-migration/utils"
)

const (
	msgVerifyAttemptIDsFailed = "verifying attempt_id values failed"

	invalidValueSampleLimit = 10
)

// AttemptIDReport summarizes whether the attempt_id column could be converted
// to uuid. InvalidSamples holds at most a handful of offending values so the
// operator can inspect them without dumping the whole table.
type AttemptIDReport struct {
	Populated      int
	ValidUUIDs     int
	Invalid        int
	InvalidSamples []string
}

const selectAttemptIDs = `
	SELECT attempt_id FROM <SCHEMA_PLACEHOLDER>.test_attempts WHERE attempt_id IS NOT NULL;
`

func (m *attemptIDMigrator) VerifyAttemptIDs(ctx context.Context, dbConn *sqlx.DB, schemaName string) (AttemptIDReport, error) {
	report := AttemptIDReport{}
	rows, err := dbConn.QueryxContext(ctx, strings.ReplaceAll(selectAttemptIDs, "<SCHEMA_PLACEHOLDER>", schemaName))
	if err != nil {
		log.Error().Err(err).Msg(msgVerifyAttemptIDsFailed)
		return report, errors.Wrap(err, msgVerifyAttemptIDsFailed)
	}
	defer rows.Close()
	for rows.Next() {
		var attemptID sql.NullString
		err = rows.Scan(&attemptID)
		if err != nil {
			return report, errors.Wrap(err, msgVerifyAttemptIDsFailed)
		}
		value := utils.SqlNullStringToStringPointer(attemptID)
		if value == nil {
			continue
		}
		report.Populated++
		if _, err := uuid.Parse(*value); err != nil {
			report.Invalid++
			if len(report.InvalidSamples) < invalidValueSampleLimit {
				report.InvalidSamples = append(report.InvalidSamples, *value)
			}
			continue
		}
		report.ValidUUIDs++
	}
	if err = rows.Err(); err != nil {
		return report, errors.Wrap(err, msgVerifyAttemptIDsFailed)
	}
	return report, nil
}
