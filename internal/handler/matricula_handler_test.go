package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
)

type matriculaServiceMock struct {
	enrollErr   error
	unenrollErr error
	estudiantes []models.Estudiante
	cursos      []models.Curso
}

func (m *matriculaServiceMock) Enroll(ctx context.Context, cursoID, cedula int64) (*models.Matricula, error) {
	if m.enrollErr != nil {
		return nil, m.enrollErr
	}
	return &models.Matricula{CursoID: cursoID, EstudianteCedula: cedula, Fecha: models.Today()}, nil
}

func (m *matriculaServiceMock) Unenroll(ctx context.Context, cursoID, cedula int64) error {
	return m.unenrollErr
}

func (m *matriculaServiceMock) EstudiantesDeCurso(ctx context.Context, cursoID int64) ([]models.Estudiante, error) {
	return m.estudiantes, nil
}

func (m *matriculaServiceMock) CursosDeEstudiante(ctx context.Context, cedula int64) ([]models.Curso, error) {
	return m.cursos, nil
}

func testContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestMatriculaHandlerEnroll(t *testing.T) {
	handler := NewMatriculaHandler(&matriculaServiceMock{})
	c, w := testContext(t, http.MethodPost, "/cursos/1/estudiantes/1001")
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "cedula", Value: "1001"}}

	handler.Enroll(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "matriculado", body["message"])
	assert.Equal(t, float64(1), body["curso_id"])
	assert.Equal(t, float64(1001), body["cedula"])
}

func TestMatriculaHandlerEnrollConflict(t *testing.T) {
	handler := NewMatriculaHandler(&matriculaServiceMock{
		enrollErr: appErrors.Clone(appErrors.ErrConflict, "el estudiante ya esta matriculado en el curso"),
	})
	c, w := testContext(t, http.MethodPost, "/cursos/1/estudiantes/1001")
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "cedula", Value: "1001"}}

	handler.Enroll(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ya esta matriculado")
}

func TestMatriculaHandlerEnrollInvalidParam(t *testing.T) {
	handler := NewMatriculaHandler(&matriculaServiceMock{})
	c, w := testContext(t, http.MethodPost, "/cursos/abc/estudiantes/1001")
	c.Params = gin.Params{{Key: "id", Value: "abc"}, {Key: "cedula", Value: "1001"}}

	handler.Enroll(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatriculaHandlerUnenrollNotFound(t *testing.T) {
	handler := NewMatriculaHandler(&matriculaServiceMock{
		unenrollErr: appErrors.Clone(appErrors.ErrNotFound, "matricula no encontrada"),
	})
	c, w := testContext(t, http.MethodDelete, "/cursos/1/estudiantes/1001")
	c.Params = gin.Params{{Key: "id", Value: "1"}, {Key: "cedula", Value: "1001"}}

	handler.Unenroll(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatriculaHandlerEstudiantesDeCursoEmpty(t *testing.T) {
	handler := NewMatriculaHandler(&matriculaServiceMock{estudiantes: []models.Estudiante{}})
	c, w := testContext(t, http.MethodGet, "/cursos/1/estudiantes")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.EstudiantesDeCurso(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestMatriculaHandlerCursosDeEstudiante(t *testing.T) {
	handler := NewMatriculaHandler(&matriculaServiceMock{
		cursos: []models.Curso{{ID: 1, Nombre: "Algoritmos", Creditos: 4}},
	})
	c, w := testContext(t, http.MethodGet, "/cursos/estudiantes/1001/cursos")
	c.Params = gin.Params{{Key: "cedula", Value: "1001"}}

	handler.CursosDeEstudiante(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Algoritmos")
}
