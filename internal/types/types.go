package types

// Request/response shapes for the HTTP API.

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	SessionID string `json:"session_id"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type CommandResult struct {
	Intent            string         `json:"intent"`
	OK                bool           `json:"ok"`
	Message           string         `json:"message"`
	Detail            string         `json:"detail,omitempty"`
	Payload           map[string]any `json:"payload,omitempty"`
	NeedsConfirmation bool           `json:"needs_confirmation,omitempty"`
	ConfirmToken      string         `json:"confirm_token,omitempty"`
}

type ChatResponse struct {
	SessionID string          `json:"session_id"`
	Reply     string          `json:"reply"`
	Results   []CommandResult `json:"results,omitempty"`
}

type ConfirmRequest struct {
	Token   string `json:"token"`
	Confirm bool   `json:"confirm"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
