package dto

// PageRequest paginação opcional das listagens (0 = sem limite).
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// ErrorResponse corpo de erro HTTP. O campo "error" traz a mensagem genérica.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// MessageResponse confirmação simples.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
