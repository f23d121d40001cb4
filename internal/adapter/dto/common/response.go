package common

// ErrorResponse is the body of every failed request.
// Details is set for upstream timeouts only.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
