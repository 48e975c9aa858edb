// Package schema provides database schema models for GNtaxdump.
// A taxon row keeps a node of NCBI taxonomy together with its
// classification breadcrumbs, so lineages can be read without recursive
// queries.
package schema

import (
	"time"
)

// DDLGenerator defines how Go models generate PostgreSQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the PostgreSQL table name for this model.
	TableName() string
}

// Taxon is a node of NCBI taxonomy.
type Taxon struct {
	// ID is NCBI taxid.
	ID int `db:"id" ddl:"INT PRIMARY KEY" gorm:"primaryKey;autoIncrement:false"`

	// ParentID is the taxid of the parent node. The root is its own parent.
	ParentID int `db:"parent_id" ddl:"INT NOT NULL" gorm:"not null"`

	// Rank is the rank given in nodes.dmp.
	Rank string `db:"rank" ddl:"VARCHAR(50) NOT NULL" gorm:"type:varchar(50);not null"`

	// EffectiveRank is the rank with "strain" for "no rank" nodes under
	// species.
	EffectiveRank string `db:"effective_rank" ddl:"VARCHAR(50) NOT NULL" gorm:"type:varchar(50);not null"`

	// Name is the scientific name of the node.
	Name string `db:"name" ddl:"VARCHAR(500) NOT NULL" gorm:"type:varchar(500);not null"`

	// NameID is UUID v5 generated from Name using DNS:"globalnames.org".
	NameID string `db:"name_id" ddl:"UUID NOT NULL" gorm:"type:uuid;not null"`

	// DivisionID is the GenBank division of the node.
	DivisionID string `db:"division_id" ddl:"VARCHAR(10)" gorm:"type:varchar(10)"`

	// GeneticCodeID is the genetic code of the node.
	GeneticCodeID string `db:"genetic_code_id" ddl:"VARCHAR(10)" gorm:"type:varchar(10)"`

	// Classification is a pipe-delimited list of names from the top of the
	// tree down to the node.
	Classification string `db:"classification" ddl:"TEXT" gorm:"type:text"`

	// ClassificationRanks is a pipe-delimited list of effective ranks that
	// correspond to Classification.
	ClassificationRanks string `db:"classification_ranks" ddl:"TEXT" gorm:"type:text"`

	// ClassificationIDs is a pipe-delimited list of taxids that correspond
	// to Classification.
	ClassificationIDs string `db:"classification_ids" ddl:"TEXT" gorm:"type:text"`
}

// SchemaVersion tracks database schema migrations.
type SchemaVersion struct {
	Version     string    `db:"version" ddl:"TEXT PRIMARY KEY" gorm:"primaryKey"`
	Description string    `db:"description" ddl:"TEXT"`
	AppliedAt   time.Time `db:"applied_at" ddl:"TIMESTAMP DEFAULT NOW()" gorm:"default:now()"`
}
