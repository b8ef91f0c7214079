package utils_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examforge/attemptid-migration/utils"
)

func TestSqlNullStringToStringPointer(t *testing.T) {
	value := utils.SqlNullStringToStringPointer(sql.NullString{String: "abc-123", Valid: true})
	assert.NotNil(t, value)
	assert.Equal(t, "abc-123", *value)

	assert.Nil(t, utils.SqlNullStringToStringPointer(sql.NullString{}))
}
