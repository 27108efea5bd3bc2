package models

// Error carries a machine-readable code alongside the human message
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// SyncRunResponse is the invocation result of one sync run. A run that
// committed some rows and skipped others is still a success; Errors lists
// the per-row diagnostics.
type SyncRunResponse struct {
	Success bool           `json:"success"`
	Run     *SyncRun       `json:"run"`
	Errors  []SyncRowError `json:"errors,omitempty"`
	Message string         `json:"message,omitempty"`
}
