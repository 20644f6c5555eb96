package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	"github.com/jdcastellanos/uni-registro-api/internal/service"
	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
	"github.com/jdcastellanos/uni-registro-api/pkg/response"
)

type estudianteService interface {
	List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error)
	Get(ctx context.Context, cedula int64, includeArchived bool) (*models.Estudiante, error)
	Create(ctx context.Context, req service.CreateEstudianteRequest) (*models.Estudiante, error)
	Update(ctx context.Context, cedula int64, req service.UpdateEstudianteRequest) (*models.Estudiante, error)
	Archive(ctx context.Context, cedula int64) (int64, error)
}

type cursosDeEstudianteLister interface {
	CursosDeEstudiante(ctx context.Context, cedula int64) ([]models.Curso, error)
}

// EstudianteHandler exposes the student endpoints.
type EstudianteHandler struct {
	estudiantes estudianteService
	matriculas  cursosDeEstudianteLister
}

// NewEstudianteHandler constructs EstudianteHandler.
func NewEstudianteHandler(estudiantes estudianteService, matriculas cursosDeEstudianteLister) *EstudianteHandler {
	return &EstudianteHandler{estudiantes: estudiantes, matriculas: matriculas}
}

// Create handles POST /estudiantes.
func (h *EstudianteHandler) Create(c *gin.Context) {
	var req service.CreateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cuerpo de peticion invalido"))
		return
	}
	estudiante, err := h.estudiantes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, estudiante)
}

// List handles GET /estudiantes with semestre and incluir_archivados filters.
func (h *EstudianteHandler) List(c *gin.Context) {
	var filter models.EstudianteFilter
	if raw := c.Query("semestre"); raw != "" {
		semestre, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filtro semestre invalido"))
			return
		}
		filter.Semestre = &semestre
	}
	filter.IncludeArchived = boolQuery(c, "incluir_archivados")

	estudiantes, err := h.estudiantes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiantes)
}

// Get handles GET /estudiantes/:cedula, embedding the student's courses.
func (h *EstudianteHandler) Get(c *gin.Context) {
	cedula, err := int64Param(c, "cedula")
	if err != nil {
		response.Error(c, err)
		return
	}
	estudiante, err := h.estudiantes.Get(c.Request.Context(), cedula, boolQuery(c, "incluir_archivados"))
	if err != nil {
		response.Error(c, err)
		return
	}
	cursos, err := h.matriculas.CursosDeEstudiante(c.Request.Context(), cedula)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.EstudianteDetalle{Estudiante: *estudiante, Cursos: cursos})
}

// Update handles PUT /estudiantes/:cedula with a partial payload.
func (h *EstudianteHandler) Update(c *gin.Context) {
	cedula, err := int64Param(c, "cedula")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cuerpo de peticion invalido"))
		return
	}
	estudiante, err := h.estudiantes.Update(c.Request.Context(), cedula, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiante)
}

// Archive handles DELETE /estudiantes/:cedula: soft-delete plus cascade.
func (h *EstudianteHandler) Archive(c *gin.Context) {
	cedula, err := int64Param(c, "cedula")
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := h.estudiantes.Archive(c.Request.Context(), cedula)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":               "archivado",
		"cedula":                cedula,
		"matriculas_eliminadas": count,
	})
}
