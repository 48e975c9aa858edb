package ioschema

import "fmt"

// collationSQL makes a text column compare and sort byte-wise.
const collationSQL = `ALTER TABLE %s ALTER COLUMN %s TYPE VARCHAR(%d) COLLATE "C"`

// formatCollationSQL formats the collation SQL statement.
func formatCollationSQL(
	template string,
	table string,
	column string,
	varchar int,
) string {
	return fmt.Sprintf(template, table, column, varchar)
}
