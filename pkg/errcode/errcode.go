package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Taxonomy dump errors
	TaxdumpParseError
	TaxdumpMissingNameError
	TaxdumpTaxIDNotFoundError
	TaxdumpCycleError
	TaxdumpAmbiguousRankError
	TaxdumpCacheError

	// Accession errors
	AccessionParseError
	AccessionStoreError
	AccessionStoreNotOpenError
	AssemblySummaryError

	// Lineage export errors
	LineageExportError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError
	SchemaIndexError

	// Populate errors
	PopulateTaxaError
	PopulateCancelledError
)
