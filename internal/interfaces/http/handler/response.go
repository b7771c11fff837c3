package handler

// SuccessResponse is the standard success envelope
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorInfo carries a machine-readable error code and a human message
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error"`
}

func newSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

func newErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}
