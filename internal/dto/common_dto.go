package dto

// MessageResponse is the body of every successful mutation: a French message
// shown verbatim next to the form, plus the id of what was created, if any.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// HealthResponse reports each backend as "connected", "error" or "disabled".
type HealthResponse struct {
	OK      bool   `json:"ok"`
	DB      string `json:"db"`
	Dialect string `json:"dialect"`
	Redis   string `json:"redis"`
}
