package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire format version. Bump only with a client
// migration plan; the field name "v" is part of the contract.
const envelopeVersion = 1

// successEnvelope wraps successful responses.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// errorEnvelope wraps failed responses. Simple errors carry only the
// error string; domain errors carry code, message, and details.
type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope. Registered as a huma transformer so handlers return plain
// DTOs and never see the envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code == "" {
			return &errorEnvelope{
				V:     envelopeVersion,
				Error: apiErr.Message,
			}, nil
		}
		return &errorEnvelope{
			V:       envelopeVersion,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if err, ok := v.(error); ok {
		return &errorEnvelope{
			V:     envelopeVersion,
			Error: err.Error(),
		}, nil
	}

	if isErrorStatus(status) {
		return &errorEnvelope{
			V:     envelopeVersion,
			Error: "request failed",
		}, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

// isErrorStatus reports whether the status string ("200", "404", ...)
// denotes a client or server error.
func isErrorStatus(status string) bool {
	return strings.HasPrefix(status, "4") || strings.HasPrefix(status, "5")
}
