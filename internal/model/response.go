package model

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// NewErrorResponse creates an error response with an optional detail
func NewErrorResponse(message, detail string) ErrorResponse {
	return ErrorResponse{Error: true, Message: message, Detail: detail}
}

// SuccessResponse is the JSON body for generic successful requests
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(message string, data any) SuccessResponse {
	return SuccessResponse{Message: message, Data: data}
}
