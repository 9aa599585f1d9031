package dto

// CreateUserRequest payload.
type CreateUserRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateUserRequest payload.
type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// CreateRoleRequest payload.
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateCategoryRequest payload.
type UpdateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateClientRequest payload.
type CreateClientRequest struct {
	Name         string `json:"name"`
	Company      string `json:"company"`
	ContactEmail string `json:"contact_email"`
	UserID       int64  `json:"user_id"`
}

// UpdateClientRequest payload.
type UpdateClientRequest struct {
	Name         *string `json:"name"`
	Company      *string `json:"company"`
	ContactEmail *string `json:"contact_email"`
}

// CreateTechnicianRequest payload.
type CreateTechnicianRequest struct {
	Name         string `json:"name"`
	Speciality   string `json:"speciality"`
	Availability string `json:"availability"`
	UserID       int64  `json:"user_id"`
}

// UpdateTechnicianRequest payload.
type UpdateTechnicianRequest struct {
	Name         *string `json:"name"`
	Speciality   *string `json:"speciality"`
	Availability *string `json:"availability"`
}

// UserResponse serializes a user.
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// RoleResponse serializes a role.
type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse serializes a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ClientResponse serializes a client.
type ClientResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	ContactEmail string `json:"contact_email"`
	UserID       int64  `json:"user_id"`
}

// TechnicianResponse serializes a technician.
type TechnicianResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Speciality   string `json:"speciality"`
	Availability string `json:"availability"`
	UserID       int64  `json:"user_id"`
}
