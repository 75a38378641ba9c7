package checks

import (
	"fmt"
	"sync"

	"listing-media/core/database"
	"listing-media/feature/listing"
	"listing-media/feature/media/models"
	"listing-media/feature/summary"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Models lists the models whose tables this service owns.
var Models = []any{&models.Asset{}, &summary.Summary{}, &listing.Counter{}}

// SchemaReport is the result of a schema check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema compares the live tables with the columns the models map.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range Models {
		sch, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		actual, err := database.GetTableColumns(db, sch.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", sch.Table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tbl.Status = "missing"
			tbl.MissingColumns = append(tbl.MissingColumns, sch.DBNames...)
			report.Tables[sch.Table] = tbl
			report.Matched = false
			continue
		}

		present := make(map[string]bool, len(actual))
		for _, col := range actual {
			present[col.Field] = true
		}
		for _, name := range sch.DBNames {
			if !present[name] {
				tbl.MissingColumns = append(tbl.MissingColumns, name)
				tbl.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[sch.Table] = tbl
	}

	return report, nil
}
