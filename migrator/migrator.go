package migrator

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/examforge/attemptid-migration/db"
)

const (
	msgCheckPreconditionsFailed   = "checking migration preconditions failed"
	msgTestAttemptsTableMissing   = "test_attempts table does not exist in target schema"
	msgResultsDataColumnMissing   = "test_attempts.results_data column does not exist"
	msgAddAttemptIDColumnFailed   = "adding attempt_id column failed"
	msgBackfillAttemptIDFailed    = "backfilling attempt_id failed"
	msgCreateAttemptIDIndexFailed = "creating attempt_id index failed"
)

var (
	ErrTestAttemptsTableMissing = errors.New(msgTestAttemptsTableMissing)
	ErrResultsDataColumnMissing = errors.New(msgResultsDataColumnMissing)
)

type attemptIDMigrator struct {
}

type AttemptIDMigrator interface {
	// Run adds the attempt_id column to test_attempts, backfills it from
	// results_data and creates the lookup index, all in one transaction.
	// Safe to run more than once.
	Run(ctx context.Context, db *sqlx.DB, schemaName string) error
	// VerifyAttemptIDs reports whether the backfilled values would survive a
	// manual conversion of the column to uuid. Read-only.
	VerifyAttemptIDs(ctx context.Context, db *sqlx.DB, schemaName string) (AttemptIDReport, error)
}

func NewAttemptIDMigrator() AttemptIDMigrator {
	return &attemptIDMigrator{}
}

func (m *attemptIDMigrator) Run(ctx context.Context, dbConn *sqlx.DB, schemaName string) error {
	tx, err := dbConn.Beginx()
	if err != nil {
		log.Error().Err(err).Msg(db.MsgBeginTransactionFailed)
		return db.ErrBeginTransactionFailed
	}
	err = m.checkPreconditions(ctx, tx, schemaName)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	_, err = tx.ExecContext(ctx, strings.ReplaceAll(addAttemptIDColumn, "<SCHEMA_PLACEHOLDER>", schemaName))
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, msgAddAttemptIDColumnFailed)
	}
	result, err := tx.ExecContext(ctx, strings.ReplaceAll(backfillAttemptID, "<SCHEMA_PLACEHOLDER>", schemaName))
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, msgBackfillAttemptIDFailed)
	}
	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Info().Int64("rows", rowsAffected).Msg("backfilled attempt_id from results_data")
	}
	_, err = tx.ExecContext(ctx, strings.ReplaceAll(createAttemptIDIndex, "<SCHEMA_PLACEHOLDER>", schemaName))
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, msgCreateAttemptIDIndexFailed)
	}
	err = tx.Commit()
	if err != nil {
		_ = tx.Rollback()
		log.Error().Err(err).Msg(db.MsgCommitTransactionFailed)
		return db.ErrCommitTransactionFailed
	}
	return nil
}

func (m *attemptIDMigrator) checkPreconditions(ctx context.Context, tx *sqlx.Tx, schemaName string) error {
	tableExists := false
	query := `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = 'test_attempts'
	);`
	err := tx.QueryRowxContext(ctx, query, schemaName).Scan(&tableExists)
	if err != nil {
		return errors.Wrap(err, msgCheckPreconditionsFailed)
	}
	if !tableExists {
		return ErrTestAttemptsTableMissing
	}
	columnExists := false
	query = `SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = 'test_attempts' AND column_name = 'results_data'
	);`
	err = tx.QueryRowxContext(ctx, query, schemaName).Scan(&columnExists)
	if err != nil {
		return errors.Wrap(err, msgCheckPreconditionsFailed)
	}
	if !columnExists {
		return ErrResultsDataColumnMissing
	}
	return nil
}
