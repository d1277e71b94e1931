package moremodels

// User is an external reviewer.
type User struct {
	// Login is the reviewer's handle.
	Login string `json:"login"`
}
