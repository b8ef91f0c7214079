package migrator

const addAttemptIDColumn = `
	ALTER TABLE <SCHEMA_PLACEHOLDER>.test_attempts ADD COLUMN IF NOT EXISTS attempt_id TEXT;
`

// First array element carrying a non-null attempt_id wins; WITH ORDINALITY
// pins "first" to the array's declared order. Rows with an attempt_id already
// set are never touched, so re-running is a no-op.
const backfillAttemptID = `
	UPDATE <SCHEMA_PLACEHOLDER>.test_attempts AS ta
	SET attempt_id = candidates.attempt_id
	FROM (
		SELECT id,
			(
				SELECT results.element ->> 'attempt_id'
				FROM jsonb_array_elements(results_data::jsonb) WITH ORDINALITY AS results(element, position)
				WHERE results.element ->> 'attempt_id' IS NOT NULL
				ORDER BY results.position
				LIMIT 1
			) AS attempt_id
		FROM <SCHEMA_PLACEHOLDER>.test_attempts
		WHERE attempt_id IS NULL
			AND results_data IS NOT NULL
			AND jsonb_typeof(results_data::jsonb) = 'array'
	) AS candidates
	WHERE ta.id = candidates.id AND candidates.attempt_id IS NOT NULL;
`

const createAttemptIDIndex = `
	CREATE INDEX IF NOT EXISTS idx_test_attempts_attempt_id ON <SCHEMA_PLACEHOLDER>.test_attempts (attempt_id);

	-- Follow-up once the backfilled values are confirmed to be valid UUIDs
	-- (see the verify command), at operator discretion:
	--   ALTER TABLE <SCHEMA_PLACEHOLDER>.test_attempts
	--       ALTER COLUMN attempt_id TYPE uuid USING attempt_id::uuid;
`
