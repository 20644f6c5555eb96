package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table creation statements. The composite primary key on matricula
// enforces pair uniqueness at the store, closing the race between the
// duplicate-check read and the insert.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS estudiante (
		cedula INTEGER PRIMARY KEY,
		nombre TEXT NOT NULL,
		email TEXT NOT NULL,
		semestre INTEGER NOT NULL,
		archivado INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS curso (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		creditos INTEGER NOT NULL,
		horario TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS matricula (
		curso_id INTEGER NOT NULL REFERENCES curso(id),
		estudiante_cedula INTEGER NOT NULL REFERENCES estudiante(cedula),
		fecha TEXT NOT NULL,
		PRIMARY KEY (curso_id, estudiante_cedula)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matricula_estudiante ON matricula(estudiante_cedula)`,
}

// InitSchema creates the three tables when the database file is fresh.
func InitSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
