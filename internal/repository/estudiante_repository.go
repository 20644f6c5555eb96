package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
)

// EstudianteRepository manages persistence for student records.
type EstudianteRepository struct {
	db *sqlx.DB
}

// NewEstudianteRepository constructs an EstudianteRepository.
func NewEstudianteRepository(db *sqlx.DB) *EstudianteRepository {
	return &EstudianteRepository{db: db}
}

// List returns students matching the provided filters. Archived rows are
// excluded unless the filter asks for them.
func (r *EstudianteRepository) List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if !filter.IncludeArchived {
		conditions = append(conditions, "archivado = 0")
	}
	if filter.Semestre != nil {
		conditions = append(conditions, "semestre = ?")
		args = append(args, *filter.Semestre)
	}

	query := fmt.Sprintf(`SELECT cedula, nombre, email, semestre, archivado FROM estudiante WHERE %s ORDER BY cedula`,
		strings.Join(conditions, " AND "))

	estudiantes := []models.Estudiante{}
	if err := r.db.SelectContext(ctx, &estudiantes, query, args...); err != nil {
		return nil, fmt.Errorf("list estudiantes: %w", err)
	}
	return estudiantes, nil
}

// FindByCedula fetches a student by cedula. Archived students behave as
// absent unless includeArchived is set.
func (r *EstudianteRepository) FindByCedula(ctx context.Context, cedula int64, includeArchived bool) (*models.Estudiante, error) {
	query := `SELECT cedula, nombre, email, semestre, archivado FROM estudiante WHERE cedula = ?`
	if !includeArchived {
		query += " AND archivado = 0"
	}
	var estudiante models.Estudiante
	if err := r.db.GetContext(ctx, &estudiante, query, cedula); err != nil {
		return nil, err
	}
	return &estudiante, nil
}

// ExistsByCedula checks whether any row (archived included) uses the cedula.
func (r *EstudianteRepository) ExistsByCedula(ctx context.Context, cedula int64) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM estudiante WHERE cedula = ? LIMIT 1", cedula)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check cedula: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *EstudianteRepository) Create(ctx context.Context, estudiante *models.Estudiante) error {
	const query = `INSERT INTO estudiante (cedula, nombre, email, semestre, archivado)
        VALUES (:cedula, :nombre, :email, :semestre, :archivado)`
	if _, err := r.db.NamedExecContext(ctx, query, estudiante); err != nil {
		return fmt.Errorf("create estudiante: %w", err)
	}
	return nil
}

// Update persists the full student row.
func (r *EstudianteRepository) Update(ctx context.Context, estudiante *models.Estudiante) error {
	const query = `UPDATE estudiante SET nombre = :nombre, email = :email, semestre = :semestre WHERE cedula = :cedula`
	if _, err := r.db.NamedExecContext(ctx, query, estudiante); err != nil {
		return fmt.Errorf("update estudiante: %w", err)
	}
	return nil
}

// Archive flips the soft-delete flag.
func (r *EstudianteRepository) Archive(ctx context.Context, cedula int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE estudiante SET archivado = 1 WHERE cedula = ?`, cedula); err != nil {
		return fmt.Errorf("archive estudiante: %w", err)
	}
	return nil
}
