package dto

type ProcessResponse struct {
	Message   string `json:"message"`
	SessionId string `json:"session_id"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
