package models

// Roles known to the route table. Access codes may grant any other tag, which
// only reaches the routes gated by authentication alone.
const (
	RolAdmin  = "admin"
	RolMedico = "medico"
)

// Usuario represents a user in the application database.
type Usuario struct {
	ID            int    `json:"id" db:"id"`
	NombreUsuario string `json:"nombre_usuario" db:"nombre_usuario"`
	PasswordHash  string `json:"-" db:"password_hash"` // Exclude password hash from JSON responses
	TipoUsuario   string `json:"tipo_usuario" db:"tipo_usuario"`
}

// CodigoAcceso maps a pre-provisioned registration code to the role it grants.
type CodigoAcceso struct {
	Codigo      string `db:"codigo"`
	TipoUsuario string `db:"tipo_usuario"`
}

// Registro is the registration form.
type Registro struct {
	NombreUsuario string `validate:"required"`
	Password      string `validate:"required"`
	CodigoAcceso  string `validate:"required"`
}

// Credentials represents the data needed for login.
type Credentials struct {
	NombreUsuario string `validate:"required"`
	Password      string `validate:"required"`
}

// EdicionUsuario is the admin form that renames a user or changes their role.
type EdicionUsuario struct {
	ID            string `validate:"required"`
	NombreUsuario string `validate:"required"`
	TipoUsuario   string `validate:"required"`
}
