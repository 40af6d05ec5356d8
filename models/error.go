package models

// Error is the body of every non-2xx response.
type Error struct {
	Message string `json:"error"`
}
