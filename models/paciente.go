package models

// Paciente represents a patient and their last heart rate reading.
type Paciente struct {
	ID                 int    `json:"id" db:"id"`
	Nombre             string `json:"nombre" db:"nombre"`
	Edad               int    `json:"edad" db:"edad"`
	FrecuenciaCardiaca int    `json:"frecuencia_cardiaca" db:"frecuencia_cardiaca"`
}

// PacienteForm holds the raw /submit-data fields before conversion.
type PacienteForm struct {
	Name      string `validate:"required"`
	Age       string `validate:"required"`
	HeartRate string `validate:"required"`
}

// PacienteFiltro narrows a patient search. Zero values mean "no filter".
type PacienteFiltro struct {
	Nombre string
	Edad   *int
}
