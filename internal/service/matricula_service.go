package service

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	"github.com/jdcastellanos/uni-registro-api/pkg/database"
	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
)

type matriculaRepository interface {
	Exists(ctx context.Context, cursoID, cedula int64) (bool, error)
	Create(ctx context.Context, matricula *models.Matricula) error
	Delete(ctx context.Context, cursoID, cedula int64) (bool, error)
	DeleteByEstudiante(ctx context.Context, cedula int64) (int64, error)
	DeleteByCurso(ctx context.Context, cursoID int64) (int64, error)
	EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error)
	CursosDeEstudiante(ctx context.Context, cedula int64) ([]models.Curso, error)
}

type estudianteReader interface {
	FindByCedula(ctx context.Context, cedula int64, includeArchived bool) (*models.Estudiante, error)
}

type cursoReader interface {
	FindByID(ctx context.Context, id int64) (*models.Curso, error)
}

// MatriculaService owns the enrollment relation: it is the only
// component that writes matricula rows, and the student/course services
// delegate cascade cleanup here.
type MatriculaService struct {
	repo          matriculaRepository
	estudiantes   estudianteReader
	cursos        cursoReader
	allowArchived bool
	logger        *zap.Logger
}

// NewMatriculaService constructs MatriculaService. allowArchived controls
// whether archived students may still be enrolled.
func NewMatriculaService(repo matriculaRepository, estudiantes estudianteReader, cursos cursoReader, allowArchived bool, logger *zap.Logger) *MatriculaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatriculaService{repo: repo, estudiantes: estudiantes, cursos: cursos, allowArchived: allowArchived, logger: logger}
}

// Enroll registers a student in a course. Both sides must exist and the
// pair must not already be enrolled.
func (s *MatriculaService) Enroll(ctx context.Context, cursoID, cedula int64) (*models.Matricula, error) {
	if _, err := s.cursos.FindByID(ctx, cursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando curso")
	}
	if _, err := s.estudiantes.FindByCedula(ctx, cedula, s.allowArchived); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando estudiante")
	}
	exists, err := s.repo.Exists(ctx, cursoID, cedula)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error validando matricula")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "el estudiante ya esta matriculado en el curso")
	}

	matricula := &models.Matricula{CursoID: cursoID, EstudianteCedula: cedula, Fecha: models.Today()}
	if err := s.repo.Create(ctx, matricula); err != nil {
		// A concurrent enroll can slip past the pre-check; the composite
		// primary key surfaces it here.
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "el estudiante ya esta matriculado en el curso")
		}
		// A concurrent delete of either side trips the foreign keys.
		if database.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curso o estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error creando matricula")
	}

	s.logger.Info("matricula creada", zap.Int64("curso_id", cursoID), zap.Int64("cedula", cedula))
	return matricula, nil
}

// Unenroll removes a single enrollment.
func (s *MatriculaService) Unenroll(ctx context.Context, cursoID, cedula int64) error {
	deleted, err := s.repo.Delete(ctx, cursoID, cedula)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error eliminando matricula")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "matricula no encontrada")
	}
	return nil
}

// EstudiantesDeCurso returns the students enrolled in a course.
func (s *MatriculaService) EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error) {
	if _, err := s.cursos.FindByID(ctx, cursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "curso no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando curso")
	}
	estudiantes, err := s.repo.EstudiantesDeCurso(ctx, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error listando estudiantes del curso")
	}
	return estudiantes, nil
}

// CursosDeEstudiante returns the courses a student is enrolled in.
// Archived students keep their course history visible.
func (s *MatriculaService) CursosDeEstudiante(ctx context.Context, cedula int64) ([]models.Curso, error) {
	if _, err := s.estudiantes.FindByCedula(ctx, cedula, true); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error consultando estudiante")
	}
	cursos, err := s.repo.CursosDeEstudiante(ctx, cedula)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error listando cursos del estudiante")
	}
	return cursos, nil
}

// CascadeDeleteByEstudiante removes every enrollment of a student and
// returns how many were removed. Zero matches is not an error.
func (s *MatriculaService) CascadeDeleteByEstudiante(ctx context.Context, cedula int64) (int64, error) {
	count, err := s.repo.DeleteByEstudiante(ctx, cedula)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error eliminando matriculas del estudiante")
	}
	if count > 0 {
		s.logger.Info("matriculas eliminadas por estudiante", zap.Int64("cedula", cedula), zap.Int64("count", count))
	}
	return count, nil
}

// CascadeDeleteByCurso removes every enrollment of a course and returns
// how many were removed. Zero matches is not an error.
func (s *MatriculaService) CascadeDeleteByCurso(ctx context.Context, cursoID int64) (int64, error) {
	count, err := s.repo.DeleteByCurso(ctx, cursoID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error eliminando matriculas del curso")
	}
	if count > 0 {
		s.logger.Info("matriculas eliminadas por curso", zap.Int64("curso_id", cursoID), zap.Int64("count", count))
	}
	return count, nil
}
