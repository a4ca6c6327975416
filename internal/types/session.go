package types

// Session is the portal's view of the backend's login response. The cookie
// stores the response body verbatim; only these fields are read back.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
