package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of the synced records table as reported
// by information_schema.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Default *string // Pointer because NULL default is possible
}

// GetTableColumns retrieves the column definitions for a given table from
// the public schema. Used by the doctor/integrity checks to verify the
// sync pipeline's table matches the profile the service was configured for.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	err := db.Raw(
		`SELECT column_name AS field, data_type AS type, is_nullable AS "null", column_default AS "default"
		 FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ?
		 ORDER BY ordinal_position`, tableName,
	).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	// Normalize for case-insensitive comparison against expected models
	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// MissingColumns compares the live table columns against an expected set
// and returns the expected column names that are absent. Type differences
// are deliberately not flagged: Postgres reports aliased type names
// (character varying vs varchar) and the sync pipeline has changed types
// across vintages without breaking readers.
func MissingColumns(columns []ColumnInfo, expected []string) []string {
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col.Field] = struct{}{}
	}

	var missing []string
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
