package dto

// LeadRequest captures both lead form payloads. Contact-only fields are
// ignored for free-trial submissions.
type LeadRequest struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Service  string `json:"service"`
	Budget   string `json:"budget"`
	Message  string `json:"message"`
	Language string `json:"language"`
}

// StatusUpdateRequest is the body of POST /api/contact/update-status.
type StatusUpdateRequest struct {
	Type     string `json:"type"`
	RowIndex *int   `json:"rowIndex"`
	Status   string `json:"status"`
}

// LeadCreatedResponse is returned once a lead is accepted.
type LeadCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}
