package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
)

// MatriculaRepository is the sole writer of the matricula table.
type MatriculaRepository struct {
	db *sqlx.DB
}

// NewMatriculaRepository constructs the repository.
func NewMatriculaRepository(db *sqlx.DB) *MatriculaRepository {
	return &MatriculaRepository{db: db}
}

// Exists checks whether the (curso, estudiante) pair is already enrolled.
func (r *MatriculaRepository) Exists(ctx context.Context, cursoID, cedula int64) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists,
		`SELECT 1 FROM matricula WHERE curso_id = ? AND estudiante_cedula = ? LIMIT 1`, cursoID, cedula)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check matricula: %w", err)
	}
	return true, nil
}

// Create persists a new enrollment, defaulting fecha to today.
func (r *MatriculaRepository) Create(ctx context.Context, matricula *models.Matricula) error {
	if matricula.Fecha.IsZero() {
		matricula.Fecha = models.Today()
	}
	const query = `INSERT INTO matricula (curso_id, estudiante_cedula, fecha)
        VALUES (:curso_id, :estudiante_cedula, :fecha)`
	if _, err := r.db.NamedExecContext(ctx, query, matricula); err != nil {
		return fmt.Errorf("create matricula: %w", err)
	}
	return nil
}

// Delete removes a single enrollment, reporting whether a row existed.
func (r *MatriculaRepository) Delete(ctx context.Context, cursoID, cedula int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM matricula WHERE curso_id = ? AND estudiante_cedula = ?`, cursoID, cedula)
	if err != nil {
		return false, fmt.Errorf("delete matricula: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete matricula rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteByEstudiante removes every enrollment of a student, returning the count.
func (r *MatriculaRepository) DeleteByEstudiante(ctx context.Context, cedula int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matricula WHERE estudiante_cedula = ?`, cedula)
	if err != nil {
		return 0, fmt.Errorf("delete matriculas by estudiante: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete matriculas by estudiante rows: %w", err)
	}
	return affected, nil
}

// DeleteByCurso removes every enrollment of a course, returning the count.
func (r *MatriculaRepository) DeleteByCurso(ctx context.Context, cursoID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matricula WHERE curso_id = ?`, cursoID)
	if err != nil {
		return 0, fmt.Errorf("delete matriculas by curso: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete matriculas by curso rows: %w", err)
	}
	return affected, nil
}

// EstudiantesDeCurso projects the enrollment relation into the students
// enrolled in a course via a single join.
func (r *MatriculaRepository) EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error) {
	const query = `SELECT e.cedula, e.nombre, e.email, e.semestre, e.archivado
        FROM estudiante e
        JOIN matricula m ON m.estudiante_cedula = e.cedula
        WHERE m.curso_id = ?
        ORDER BY e.cedula`
	estudiantes := []models.Estudiante{}
	if err := r.db.SelectContext(ctx, &estudiantes, query, cursoID); err != nil {
		return nil, fmt.Errorf("estudiantes de curso: %w", err)
	}
	return estudiantes, nil
}

// CursosDeEstudiante projects the enrollment relation into the courses a
// student is enrolled in via a single join.
func (r *MatriculaRepository) CursosDeEstudiante(ctx context.Context, cedula int64) ([]models.Curso, error) {
	const query = `SELECT c.id, c.nombre, c.creditos, c.horario
        FROM curso c
        JOIN matricula m ON m.curso_id = c.id
        WHERE m.estudiante_cedula = ?
        ORDER BY c.id`
	cursos := []models.Curso{}
	if err := r.db.SelectContext(ctx, &cursos, query, cedula); err != nil {
		return nil, fmt.Errorf("cursos de estudiante: %w", err)
	}
	return cursos, nil
}
