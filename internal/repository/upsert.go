package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertClause builds an ON CONFLICT clause on the given key columns that
// overwrites every other column of model except the primary key and
// created_at, so re-syncing an unchanged record leaves it unchanged.
func upsertClause(db *gorm.DB, model interface{}, conflict ...string) (clause.OnConflict, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return clause.OnConflict{}, err
	}

	skip := map[string]bool{"created_at": true}
	columns := make([]clause.Column, 0, len(conflict))
	for _, name := range conflict {
		skip[name] = true
		columns = append(columns, clause.Column{Name: name})
	}

	var assign []string
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || field.PrimaryKey || skip[field.DBName] {
			continue
		}
		assign = append(assign, field.DBName)
	}

	if len(assign) == 0 {
		return clause.OnConflict{Columns: columns, DoNothing: true}, nil
	}
	return clause.OnConflict{Columns: columns, DoUpdates: clause.AssignmentColumns(assign)}, nil
}

// upsert inserts or updates value by its conflict key, ignoring associations
func upsert(db *gorm.DB, value interface{}, conflict ...string) error {
	onConflict, err := upsertClause(db, value, conflict...)
	if err != nil {
		return err
	}
	return classify(db.Omit(clause.Associations).Clauses(onConflict).Create(value).Error)
}

// insertIgnore inserts link rows that may already exist
func insertIgnore(db *gorm.DB, value interface{}, conflict ...string) error {
	columns := make([]clause.Column, 0, len(conflict))
	for _, name := range conflict {
		columns = append(columns, clause.Column{Name: name})
	}
	return classify(db.Clauses(clause.OnConflict{Columns: columns, DoNothing: true}).Create(value).Error)
}
