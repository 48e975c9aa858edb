package ioschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatCollationSQL verifies SQL formatting.
func TestFormatCollationSQL(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		column   string
		varchar  int
		expected string
	}{
		{
			name:    "taxa name",
			table:   "taxa",
			column:  "name",
			varchar: 500,
			expected: `ALTER TABLE taxa ALTER COLUMN name ` +
				`TYPE VARCHAR(500) COLLATE "C"`,
		},
		{
			name:    "taxa rank",
			table:   "taxa",
			column:  "effective_rank",
			varchar: 50,
			expected: `ALTER TABLE taxa ALTER COLUMN effective_rank ` +
				`TYPE VARCHAR(50) COLLATE "C"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatCollationSQL(collationSQL,
				tt.table, tt.column, tt.varchar)
			assert.Equal(t, tt.expected, result)
		})
	}
}
