package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	"github.com/jdcastellanos/uni-registro-api/pkg/response"
)

type matriculaService interface {
	Enroll(ctx context.Context, cursoID, cedula int64) (*models.Matricula, error)
	Unenroll(ctx context.Context, cursoID, cedula int64) error
	EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error)
	CursosDeEstudiante(ctx context.Context, cedula int64) ([]models.Curso, error)
}

// MatriculaHandler exposes the enrollment endpoints.
type MatriculaHandler struct {
	matriculas matriculaService
}

// NewMatriculaHandler constructs MatriculaHandler.
func NewMatriculaHandler(matriculas matriculaService) *MatriculaHandler {
	return &MatriculaHandler{matriculas: matriculas}
}

// Enroll handles POST /cursos/:id/estudiantes/:cedula.
func (h *MatriculaHandler) Enroll(c *gin.Context) {
	cursoID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	cedula, err := int64Param(c, "cedula")
	if err != nil {
		response.Error(c, err)
		return
	}
	matricula, err := h.matriculas.Enroll(c.Request.Context(), cursoID, cedula)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message":  "matriculado",
		"curso_id": matricula.CursoID,
		"cedula":   matricula.EstudianteCedula,
	})
}

// Unenroll handles DELETE /cursos/:id/estudiantes/:cedula.
func (h *MatriculaHandler) Unenroll(c *gin.Context) {
	cursoID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	cedula, err := int64Param(c, "cedula")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.matriculas.Unenroll(c.Request.Context(), cursoID, cedula); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":  "desmatriculado",
		"curso_id": cursoID,
		"cedula":   cedula,
	})
}

// EstudiantesDeCurso handles GET /cursos/:id/estudiantes.
func (h *MatriculaHandler) EstudiantesDeCurso(c *gin.Context) {
	cursoID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	estudiantes, err := h.matriculas.EstudiantesDeCurso(c.Request.Context(), cursoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiantes)
}

// CursosDeEstudiante handles GET /cursos/estudiantes/:cedula/cursos.
func (h *MatriculaHandler) CursosDeEstudiante(c *gin.Context) {
	cedula, err := int64Param(c, "cedula")
	if err != nil {
		response.Error(c, err)
		return
	}
	cursos, err := h.matriculas.CursosDeEstudiante(c.Request.Context(), cedula)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cursos)
}
