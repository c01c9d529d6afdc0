package dto

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
