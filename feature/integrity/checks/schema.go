package checks

import (
	"fmt"
	"reflect"
	"strings"

	"doc-browser/core/database"
	"doc-browser/feature/documents/models"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a database schema check.
type SchemaReport struct {
	Profile string                 `json:"profile"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport is the per-table portion of a schema check.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchemaIntegrity verifies the records and processing tables against
// the GORM models as the source of truth.
func CheckSchemaIntegrity(db *gorm.DB, profile string) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var recordsModel any
	switch profile {
	case "modern":
		recordsModel = models.ModernSource{}
	case "legacy":
		recordsModel = models.LegacySource{}
	default:
		return nil, fmt.Errorf("unknown schema profile: %s", profile)
	}

	report := &SchemaReport{
		Profile: profile,
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	for _, model := range []any{recordsModel, models.ProcessingRow{}} {
		checkModel(db, model, report)
	}

	return report, nil
}

// checkModel compares one model's gorm columns against the live table.
func checkModel(db *gorm.DB, model any, report *SchemaReport) {
	val := reflect.TypeOf(model)
	if val.Kind() != reflect.Struct {
		return
	}

	tabler, ok := reflect.New(val).Elem().Interface().(interface{ TableName() string })
	if !ok {
		report.Errors = append(report.Errors, fmt.Sprintf("model %s does not implement TableName", val.Name()))
		report.Matched = false
		return
	}
	tableName := tabler.TableName()

	tblReport := TableReport{
		MissingColumns: []string{},
		Status:         "ok",
	}

	actualCols, err := database.GetTableColumns(db, tableName)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
		report.Matched = false
		return
	}

	actualMap := make(map[string]struct{}, len(actualCols))
	for _, col := range actualCols {
		actualMap[col.Field] = struct{}{}
	}

	for i := 0; i < val.NumField(); i++ {
		colName := parseGormColumn(val.Field(i).Tag.Get("gorm"))
		if colName == "" {
			continue
		}
		if _, exists := actualMap[colName]; !exists {
			tblReport.MissingColumns = append(tblReport.MissingColumns, colName)
			tblReport.Status = "error"
			report.Matched = false
		}
	}

	report.Tables[tableName] = tblReport
}

// parseGormColumn extracts the column name from a gorm struct tag.
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
