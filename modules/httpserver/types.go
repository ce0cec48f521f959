package httpserver

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// RecordResponse wraps a created or updated record with the outcome of its file upload.
type RecordResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

// ListResponse wraps a list of records.
type ListResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

// HealthResponse reports the health of each module.
type HealthResponse struct {
	Status  string                  `json:"status"`
	Modules map[string]ModuleHealth `json:"modules"`
}

// ModuleHealth is the health of one module.
type ModuleHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
}
