package domain

// Client is a ticket-owning customer account, linked one-to-one to a user.
type Client struct {
	ID           int64
	Name         string
	Company      string
	ContactEmail string
	UserID       int64
}
