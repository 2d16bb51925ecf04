package models

import "encoding/json"

// Actions accepted by the validation endpoint.
const (
	ActionValidatePhone    = "validate-phone"
	ActionValidateEmail    = "validate-email"
	ActionValidatePostcode = "validate-postcode"
	ActionValidateAll      = "validate-all"
)

// Status tags carried by ValidationResult.
const (
	StatusLive          = "live"
	StatusValid         = "valid"
	StatusDead          = "dead"
	StatusRetryLater    = "retry-later"
	StatusUnknown       = "unknown"
	StatusInvalidFormat = "invalid_format"
	StatusUndeliverable = "undeliverable"
	StatusError         = "error"
)

// ValidationRequest is the body posted to the validation endpoint.
type ValidationRequest struct {
	Action      string     `json:"action"`
	Phone       FlexString `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Postcode    string     `json:"postcode,omitempty"`
	HouseNumber FlexString `json:"housenumber,omitempty"`
}

// ValidationResult is the per-check outcome returned to the caller.
// Error is only ever set when Success is false.
type ValidationResult struct {
	Success        bool   `json:"success"`
	Status         string `json:"status,omitempty"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
	Network        string `json:"network,omitempty"`
	FormattedPhone string `json:"formatted_phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Postcode       string `json:"postcode,omitempty"`
	HouseNumber    string `json:"housenumber,omitempty"`
	ValidFormat    bool   `json:"valid_format,omitempty"`
}

// Failure builds a failed result.
func Failure(status, message string) ValidationResult {
	return ValidationResult{Success: false, Status: status, Error: message}
}

// CombinedResult is the data of a validate-all response. Each check is
// reported on its own.
type CombinedResult struct {
	Phone    ValidationResult `json:"phone"`
	Email    ValidationResult `json:"email"`
	Postcode ValidationResult `json:"postcode"`
	ClientIP string           `json:"client_ip"`
}

// APIResponse is the envelope of every JSON reply.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LeadSubmitResponse is the reply to an accepted lead. Data is the upstream
// JSON and encodes as null when DataBowl sent none.
type LeadSubmitResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	HTTPCode int             `json:"http_code"`
	Data     json.RawMessage `json:"data"`
}
