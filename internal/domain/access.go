package domain

// Access is the credential record created at registration and read at
// login. Email is unique; PasswordHash is a bcrypt hash and never leaves
// the service layer.
type Access struct {
	ID           int64
	Email        string
	PasswordHash string
	UserID       int64
	RoleID       int64

	// Populated by lookup-with-relations.
	User *User
	Role *Role
}
