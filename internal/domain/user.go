package domain

// User is an identity record. Roles and credentials live on Access; client
// and technician profiles link back to a user.
type User struct {
	ID      int64
	Name    string
	Address string
	Phone   string
}
