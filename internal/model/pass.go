package model

// CreatePassRequest is the DTO for generating a coupon pass.
// Only the discount text is mandatory; every other field falls back to
// the template default when omitted.
type CreatePassRequest struct {
	Discount        string `json:"discount" validate:"required,notblank"`
	ServiceType     string `json:"serviceType"`
	ExpiryDate      string `json:"expiryDate"`
	BackgroundColor string `json:"backgroundColor"`
	StripImageData  string `json:"stripImageData"` // base64, optionally a data: URI
}

// PassResponse is the API response DTO for a successfully generated pass.
type PassResponse struct {
	Success bool   `json:"success"`
	PassURL string `json:"passUrl"`
	PassID  string `json:"passId"`
}

// ErrorResponse is the API response DTO for a failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
