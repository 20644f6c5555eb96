package models

// Curso represents a course. The id is assigned by the store on insert.
// The json casing of Creditos and Horario is part of the wire contract.
type Curso struct {
	ID       int64  `db:"id" json:"id"`
	Nombre   string `db:"nombre" json:"nombre"`
	Creditos int    `db:"creditos" json:"Creditos"`
	Horario  *Date  `db:"horario" json:"Horario"`
}

// CursoFilter encapsulates allowed search parameters for listing courses.
type CursoFilter struct {
	Creditos *int
	ID       *int64
}

// CursoDetalle is a course with the students enrolled in it.
type CursoDetalle struct {
	Curso
	Estudiantes []Estudiante `json:"estudiantes"`
}
