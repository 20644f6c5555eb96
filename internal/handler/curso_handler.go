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

type cursoService interface {
	List(ctx context.Context, filter models.CursoFilter) ([]models.Curso, error)
	Get(ctx context.Context, id int64) (*models.Curso, error)
	Create(ctx context.Context, req service.CreateCursoRequest) (*models.Curso, error)
	Update(ctx context.Context, id int64, req service.UpdateCursoRequest) (*models.Curso, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type estudiantesDeCursoLister interface {
	EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error)
}

// CursoHandler exposes the course endpoints.
type CursoHandler struct {
	cursos     cursoService
	matriculas estudiantesDeCursoLister
}

// NewCursoHandler constructs CursoHandler.
func NewCursoHandler(cursos cursoService, matriculas estudiantesDeCursoLister) *CursoHandler {
	return &CursoHandler{cursos: cursos, matriculas: matriculas}
}

// Create handles POST /cursos.
func (h *CursoHandler) Create(c *gin.Context) {
	var req service.CreateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cuerpo de peticion invalido"))
		return
	}
	curso, err := h.cursos.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, curso)
}

// List handles GET /cursos with creditos and codigo filters.
func (h *CursoHandler) List(c *gin.Context) {
	var filter models.CursoFilter
	if raw := c.Query("creditos"); raw != "" {
		creditos, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filtro creditos invalido"))
			return
		}
		filter.Creditos = &creditos
	}
	if raw := c.Query("codigo"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filtro codigo invalido"))
			return
		}
		filter.ID = &id
	}

	cursos, err := h.cursos.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cursos)
}

// Get handles GET /cursos/:id, embedding the enrolled students.
func (h *CursoHandler) Get(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	curso, err := h.cursos.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	estudiantes, err := h.matriculas.EstudiantesDeCurso(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.CursoDetalle{Curso: *curso, Estudiantes: estudiantes})
}

// Update handles PUT /cursos/:id with a partial payload.
func (h *CursoHandler) Update(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cuerpo de peticion invalido"))
		return
	}
	curso, err := h.cursos.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curso)
}

// Delete handles DELETE /cursos/:id: hard delete plus cascade.
func (h *CursoHandler) Delete(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := h.cursos.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":               "eliminado",
		"id":                    id,
		"matriculas_eliminadas": count,
	})
}
