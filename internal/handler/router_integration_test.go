package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jdcastellanos/uni-registro-api/internal/repository"
	"github.com/jdcastellanos/uni-registro-api/internal/service"
	"github.com/jdcastellanos/uni-registro-api/pkg/config"
	"github.com/jdcastellanos/uni-registro-api/pkg/database"
)

// newTestServer wires the full stack over a throwaway database file.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "universidad.sqlite3"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitSchema(db))

	logger := zap.NewNop()
	validate := validator.New()

	estudianteRepo := repository.NewEstudianteRepository(db)
	cursoRepo := repository.NewCursoRepository(db)
	matriculaRepo := repository.NewMatriculaRepository(db)

	matriculaSvc := service.NewMatriculaService(matriculaRepo, estudianteRepo, cursoRepo, true, logger)
	estudianteSvc := service.NewEstudianteService(estudianteRepo, matriculaSvc, validate, logger)
	cursoSvc := service.NewCursoService(cursoRepo, matriculaSvc, validate, logger)

	router := NewRouter(
		&config.Config{},
		logger,
		NewEstudianteHandler(estudianteSvc, matriculaSvc),
		NewCursoHandler(cursoSvc, matriculaSvc),
		NewMatriculaHandler(matriculaSvc),
		nil,
	)
	return router.Setup()
}

func doRequest(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestEnrollmentLifecycle(t *testing.T) {
	engine := newTestServer(t)

	w := doRequest(t, engine, http.MethodPost, "/cursos", `{"nombre":"Algoritmos","Creditos":4,"Horario":"2025-01-10"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var curso map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &curso))
	assert.Equal(t, float64(1), curso["id"])

	w = doRequest(t, engine, http.MethodPost, "/estudiantes", `{"cedula":1001,"nombre":"Ana","email":"a@x.co","semestre":3}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, engine, http.MethodPost, "/cursos/1/estudiantes/1001", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"matriculado"`)

	w = doRequest(t, engine, http.MethodPost, "/cursos/1/estudiantes/1001", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, engine, http.MethodGet, "/cursos/1/estudiantes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var estudiantes []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &estudiantes))
	require.Len(t, estudiantes, 1)
	assert.Equal(t, float64(1001), estudiantes[0]["cedula"])

	w = doRequest(t, engine, http.MethodDelete, "/cursos/1/estudiantes/1001", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"desmatriculado"`)

	w = doRequest(t, engine, http.MethodGet, "/cursos/1/estudiantes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doRequest(t, engine, http.MethodPost, "/cursos/1/estudiantes/1001", "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, engine, http.MethodDelete, "/estudiantes/1001", "")
	require.Equal(t, http.StatusOK, w.Code)
	var archived map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &archived))
	assert.Equal(t, "archivado", archived["message"])
	assert.Equal(t, float64(1), archived["matriculas_eliminadas"])

	w = doRequest(t, engine, http.MethodGet, "/cursos/1/estudiantes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doRequest(t, engine, http.MethodGet, "/estudiantes/1001", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, engine, http.MethodGet, "/estudiantes/1001?incluir_archivados=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
