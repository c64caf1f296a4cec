package models

// User is the authenticated identity returned by the server for the
// current bearer token.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	CreatedAt DateTime `json:"created_at,omitempty"`
}
