package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
)

// CursoRepository manages persistence for course records.
type CursoRepository struct {
	db *sqlx.DB
}

// NewCursoRepository constructs a CursoRepository.
func NewCursoRepository(db *sqlx.DB) *CursoRepository {
	return &CursoRepository{db: db}
}

// List returns courses matching the provided filters.
func (r *CursoRepository) List(ctx context.Context, filter models.CursoFilter) ([]models.Curso, error) {
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Creditos != nil {
		conditions = append(conditions, "creditos = ?")
		args = append(args, *filter.Creditos)
	}
	if filter.ID != nil {
		conditions = append(conditions, "id = ?")
		args = append(args, *filter.ID)
	}

	query := fmt.Sprintf(`SELECT id, nombre, creditos, horario FROM curso WHERE %s ORDER BY id`,
		strings.Join(conditions, " AND "))

	cursos := []models.Curso{}
	if err := r.db.SelectContext(ctx, &cursos, query, args...); err != nil {
		return nil, fmt.Errorf("list cursos: %w", err)
	}
	return cursos, nil
}

// FindByID fetches a course by its id.
func (r *CursoRepository) FindByID(ctx context.Context, id int64) (*models.Curso, error) {
	var curso models.Curso
	if err := r.db.GetContext(ctx, &curso, `SELECT id, nombre, creditos, horario FROM curso WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &curso, nil
}

// Create inserts a new course, assigning its id from the store.
func (r *CursoRepository) Create(ctx context.Context, curso *models.Curso) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO curso (nombre, creditos, horario) VALUES (?, ?, ?)`,
		curso.Nombre, curso.Creditos, curso.Horario)
	if err != nil {
		return fmt.Errorf("create curso: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create curso id: %w", err)
	}
	curso.ID = id
	return nil
}

// Update persists the full course row.
func (r *CursoRepository) Update(ctx context.Context, curso *models.Curso) error {
	const query = `UPDATE curso SET nombre = :nombre, creditos = :creditos, horario = :horario WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, curso); err != nil {
		return fmt.Errorf("update curso: %w", err)
	}
	return nil
}

// Delete removes the course row.
func (r *CursoRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM curso WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete curso: %w", err)
	}
	return nil
}
