package dto

import "time"

// DiagnosticoResponse resposta de GET /api/test.
type DiagnosticoResponse struct {
	Message     string    `json:"message"`
	Time        time.Time `json:"time"`
	Environment string    `json:"environment"`
}

// DiagnosticoErrorResponse falha de conexão; Details só fora de produção.
type DiagnosticoErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
