package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	"github.com/jdcastellanos/uni-registro-api/pkg/database"
	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
)

type estudianteRepository interface {
	List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error)
	FindByCedula(ctx context.Context, cedula int64, includeArchived bool) (*models.Estudiante, error)
	ExistsByCedula(ctx context.Context, cedula int64) (bool, error)
	Create(ctx context.Context, estudiante *models.Estudiante) error
	Update(ctx context.Context, estudiante *models.Estudiante) error
	Archive(ctx context.Context, cedula int64) error
}

type estudianteCascader interface {
	CascadeDeleteByEstudiante(ctx context.Context, cedula int64) (int64, error)
}

// CreateEstudianteRequest holds payload for creating students.
type CreateEstudianteRequest struct {
	Cedula   int64  `json:"cedula" validate:"required"`
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Semestre int    `json:"semestre" validate:"required,min=1"`
}

// UpdateEstudianteRequest holds a partial update; at least one field must
// be present.
type UpdateEstudianteRequest struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Semestre *int    `json:"semestre" validate:"omitempty,min=1"`
}

func (r UpdateEstudianteRequest) empty() bool {
	return r.Nombre == nil && r.Email == nil && r.Semestre == nil
}

// EstudianteService handles student use-cases.
type EstudianteService struct {
	repo       estudianteRepository
	matriculas estudianteCascader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewEstudianteService constructs the student service.
func NewEstudianteService(repo estudianteRepository, matriculas estudianteCascader, validate *validator.Validate, logger *zap.Logger) *EstudianteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstudianteService{repo: repo, matriculas: matriculas, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *EstudianteService) List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error) {
	estudiantes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error listando estudiantes")
	}
	return estudiantes, nil
}

// Get returns a student by cedula.
func (s *EstudianteService) Get(ctx context.Context, cedula int64, includeArchived bool) (*models.Estudiante, error) {
	estudiante, err := s.repo.FindByCedula(ctx, cedula, includeArchived)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando estudiante")
	}
	return estudiante, nil
}

// Create registers a new student, rejecting duplicate cedulas.
func (s *EstudianteService) Create(ctx context.Context, req CreateEstudianteRequest) (*models.Estudiante, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de estudiante invalidos")
	}
	exists, err := s.repo.ExistsByCedula(ctx, req.Cedula)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error validando cedula")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "la cedula ya esta registrada")
	}
	estudiante := &models.Estudiante{
		Cedula:   req.Cedula,
		Nombre:   req.Nombre,
		Email:    req.Email,
		Semestre: req.Semestre,
	}
	if err := s.repo.Create(ctx, estudiante); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "la cedula ya esta registrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error creando estudiante")
	}
	return estudiante, nil
}

// Update merges the provided fields onto the stored row. The cedula is
// immutable and archived students behave as absent.
func (s *EstudianteService) Update(ctx context.Context, cedula int64, req UpdateEstudianteRequest) (*models.Estudiante, error) {
	if req.empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "sin campos para actualizar")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de estudiante invalidos")
	}
	estudiante, err := s.repo.FindByCedula(ctx, cedula, false)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando estudiante")
	}
	if req.Nombre != nil {
		estudiante.Nombre = *req.Nombre
	}
	if req.Email != nil {
		estudiante.Email = *req.Email
	}
	if req.Semestre != nil {
		estudiante.Semestre = *req.Semestre
	}
	if err := s.repo.Update(ctx, estudiante); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error actualizando estudiante")
	}
	return estudiante, nil
}

// Archive soft-deletes a student and cascades removal of its
// enrollments, returning how many were removed.
func (s *EstudianteService) Archive(ctx context.Context, cedula int64) (int64, error) {
	estudiante, err := s.repo.FindByCedula(ctx, cedula, true)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando estudiante")
	}
	if estudiante.Archivado {
		return 0, appErrors.Clone(appErrors.ErrValidation, "el estudiante ya esta archivado")
	}
	count, err := s.matriculas.CascadeDeleteByEstudiante(ctx, cedula)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Archive(ctx, cedula); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error archivando estudiante")
	}
	s.logger.Info("estudiante archivado", zap.Int64("cedula", cedula), zap.Int64("matriculas_eliminadas", count))
	return count, nil
}
