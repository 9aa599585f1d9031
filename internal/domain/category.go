package domain

// Category groups tickets by topic.
type Category struct {
	ID          int64
	Title       string
	Description string
}
