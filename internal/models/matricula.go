package models

// Matricula links a student to a course. The (curso_id, estudiante_cedula)
// pair is the primary key; fecha defaults to the enrollment date.
type Matricula struct {
	CursoID          int64 `db:"curso_id" json:"curso_id"`
	EstudianteCedula int64 `db:"estudiante_cedula" json:"estudiante_cedula"`
	Fecha            Date  `db:"fecha" json:"fecha"`
}
