package domain

// Technician is a support worker profile. UserID links to the owning user
// account and is how a principal is translated into a technician identity.
type Technician struct {
	ID           int64
	Name         string
	Speciality   string
	Availability string
	UserID       int64
}
