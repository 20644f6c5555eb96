package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
)

type cursoRepository interface {
	List(ctx context.Context, filter models.CursoFilter) ([]models.Curso, error)
	FindByID(ctx context.Context, id int64) (*models.Curso, error)
	Create(ctx context.Context, curso *models.Curso) error
	Update(ctx context.Context, curso *models.Curso) error
	Delete(ctx context.Context, id int64) error
}

type cursoCascader interface {
	CascadeDeleteByCurso(ctx context.Context, cursoID int64) (int64, error)
}

// CreateCursoRequest holds payload for creating courses.
type CreateCursoRequest struct {
	Nombre   string       `json:"nombre" validate:"required"`
	Creditos int          `json:"Creditos" validate:"required,min=1"`
	Horario  *models.Date `json:"Horario"`
}

// UpdateCursoRequest holds a partial update; at least one field must be
// present.
type UpdateCursoRequest struct {
	Nombre   *string      `json:"nombre"`
	Creditos *int         `json:"Creditos" validate:"omitempty,min=1"`
	Horario  *models.Date `json:"Horario"`
}

func (r UpdateCursoRequest) empty() bool {
	return r.Nombre == nil && r.Creditos == nil && r.Horario == nil
}

// CursoService handles course use-cases.
type CursoService struct {
	repo       cursoRepository
	matriculas cursoCascader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCursoService constructs the course service.
func NewCursoService(repo cursoRepository, matriculas cursoCascader, validate *validator.Validate, logger *zap.Logger) *CursoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CursoService{repo: repo, matriculas: matriculas, validator: validate, logger: logger}
}

// List returns courses matching the filter.
func (s *CursoService) List(ctx context.Context, filter models.CursoFilter) ([]models.Curso, error) {
	cursos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error listando cursos")
	}
	return cursos, nil
}

// Get returns a course by id.
func (s *CursoService) Get(ctx context.Context, id int64) (*models.Curso, error) {
	curso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando curso")
	}
	return curso, nil
}

// Create registers a new course; the store assigns its id.
func (s *CursoService) Create(ctx context.Context, req CreateCursoRequest) (*models.Curso, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de curso invalidos")
	}
	curso := &models.Curso{
		Nombre:   req.Nombre,
		Creditos: req.Creditos,
		Horario:  req.Horario,
	}
	if err := s.repo.Create(ctx, curso); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error creando curso")
	}
	return curso, nil
}

// Update merges the provided fields onto the stored row.
func (s *CursoService) Update(ctx context.Context, id int64, req UpdateCursoRequest) (*models.Curso, error) {
	if req.empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sin campos para actualizar")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de curso invalidos")
	}
	curso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando curso")
	}
	if req.Nombre != nil {
		curso.Nombre = *req.Nombre
	}
	if req.Creditos != nil {
		curso.Creditos = *req.Creditos
	}
	if req.Horario != nil {
		curso.Horario = req.Horario
	}
	if err := s.repo.Update(ctx, curso); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error actualizando curso")
	}
	return curso, nil
}

// Delete removes a course after cascading removal of its enrollments,
// returning how many enrollments were removed.
func (s *CursoService) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "curso no encontrado")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando curso")
	}
	count, err := s.matriculas.CascadeDeleteByCurso(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error eliminando curso")
	}
	s.logger.Info("curso eliminado", zap.Int64("id", id), zap.Int64("matriculas_eliminadas", count))
	return count, nil
}
