package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	"github.com/jdcastellanos/uni-registro-api/internal/service"
	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
)

type cursoServiceMock struct {
	getErr      error
	deleteCount int64
	lastFilter  models.CursoFilter
}

func (m *cursoServiceMock) List(ctx context.Context, filter models.CursoFilter) ([]models.Curso, error) {
	m.lastFilter = filter
	return []models.Curso{}, nil
}

func (m *cursoServiceMock) Get(ctx context.Context, id int64) (*models.Curso, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.Curso{ID: id, Nombre: "Algoritmos", Creditos: 4}, nil
}

func (m *cursoServiceMock) Create(ctx context.Context, req service.CreateCursoRequest) (*models.Curso, error) {
	return &models.Curso{ID: 1, Nombre: req.Nombre, Creditos: req.Creditos, Horario: req.Horario}, nil
}

func (m *cursoServiceMock) Update(ctx context.Context, id int64, req service.UpdateCursoRequest) (*models.Curso, error) {
	return &models.Curso{ID: id, Nombre: "Algoritmos", Creditos: 4}, nil
}

func (m *cursoServiceMock) Delete(ctx context.Context, id int64) (int64, error) {
	return m.deleteCount, nil
}

type estudiantesListerMock struct {
	estudiantes []models.Estudiante
}

func (m *estudiantesListerMock) EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error) {
	return m.estudiantes, nil
}

func TestCursoHandlerGetEmbedsEstudiantes(t *testing.T) {
	handler := NewCursoHandler(&cursoServiceMock{}, &estudiantesListerMock{
		estudiantes: []models.Estudiante{{Cedula: 1001, Nombre: "Ana", Email: "a@x.co", Semestre: 3}},
	})
	c, w := testContext(t, http.MethodGet, "/cursos/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.CursoDetalle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.ID)
	require.Len(t, body.Estudiantes, 1)
	assert.Equal(t, int64(1001), body.Estudiantes[0].Cedula)
}

func TestCursoHandlerGetNotFound(t *testing.T) {
	handler := NewCursoHandler(&cursoServiceMock{
		getErr: appErrors.Clone(appErrors.ErrNotFound, "curso no encontrado"),
	}, &estudiantesListerMock{})
	c, w := testContext(t, http.MethodGet, "/cursos/99")
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCursoHandlerListParsesFilters(t *testing.T) {
	mock := &cursoServiceMock{}
	handler := NewCursoHandler(mock, &estudiantesListerMock{})
	c, w := testContext(t, http.MethodGet, "/cursos?creditos=4&codigo=2")

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.lastFilter.Creditos)
	assert.Equal(t, 4, *mock.lastFilter.Creditos)
	require.NotNil(t, mock.lastFilter.ID)
	assert.Equal(t, int64(2), *mock.lastFilter.ID)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCursoHandlerListInvalidFilter(t *testing.T) {
	handler := NewCursoHandler(&cursoServiceMock{}, &estudiantesListerMock{})
	c, w := testContext(t, http.MethodGet, "/cursos?creditos=muchos")

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCursoHandlerDelete(t *testing.T) {
	handler := NewCursoHandler(&cursoServiceMock{deleteCount: 3}, &estudiantesListerMock{})
	c, w := testContext(t, http.MethodDelete, "/cursos/1")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "eliminado", body["message"])
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, float64(3), body["matriculas_eliminadas"])
}
