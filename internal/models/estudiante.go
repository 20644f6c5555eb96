package models

// Estudiante represents a student record keyed by national ID. The
// cedula is caller-supplied and immutable once set.
type Estudiante struct {
	Cedula    int64  `db:"cedula" json:"cedula"`
	Nombre    string `db:"nombre" json:"nombre"`
	Email     string `db:"email" json:"email"`
	Semestre  int    `db:"semestre" json:"semestre"`
	Archivado bool   `db:"archivado" json:"archivado"`
}

// EstudianteFilter encapsulates allowed search parameters for listing students.
type EstudianteFilter struct {
	Semestre        *int
	IncludeArchived bool
}

// EstudianteDetalle is a student with the courses it is enrolled in.
type EstudianteDetalle struct {
	Estudiante
	Cursos []Curso `json:"cursos"`
}
