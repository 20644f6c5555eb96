package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcastellanos/uni-registro-api/internal/models"
)

func mustDate() time.Time {
	d, err := time.Parse("2006-01-02", "2025-01-10")
	if err != nil {
		panic(err)
	}
	return d
}

func TestCursoRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCursoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO curso (nombre, creditos, horario) VALUES (?, ?, ?)`)).
		WithArgs("Algoritmos", 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	horario := models.DateOf(mustDate())
	curso := &models.Curso{Nombre: "Algoritmos", Creditos: 4, Horario: &horario}
	err := repo.Create(context.Background(), curso)
	require.NoError(t, err)
	assert.Equal(t, int64(7), curso.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursoRepositoryListByCreditos(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCursoRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "creditos", "horario"}).
		AddRow(1, "Algoritmos", 4, "2025-01-10").
		AddRow(2, "Bases de Datos", 4, nil)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, nombre, creditos, horario FROM curso WHERE 1=1 AND creditos = ? ORDER BY id`)).
		WithArgs(4).
		WillReturnRows(rows)

	cursos, err := repo.List(context.Background(), models.CursoFilter{Creditos: intPtr(4)})
	require.NoError(t, err)
	require.Len(t, cursos, 2)
	require.NotNil(t, cursos[0].Horario)
	assert.Equal(t, "2025-01-10", cursos[0].Horario.String())
	assert.Nil(t, cursos[1].Horario)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCursoRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCursoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM curso WHERE id = ?`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
