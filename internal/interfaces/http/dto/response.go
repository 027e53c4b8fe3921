package dto

// ErrorResponse is the uniform JSON error body for non-redirect failures
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// ActionResponse reports the outcome of a state-changing action
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ActionOK is the fixed body of a successful action
var ActionOK = ActionResponse{Success: true}

// NewActionFailure creates a failed action response with a reason
func NewActionFailure(message string) ActionResponse {
	return ActionResponse{Success: false, Message: message}
}
