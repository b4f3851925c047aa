package models

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Fail wraps an error message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}
