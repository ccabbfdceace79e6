package api

import "github.com/danielgtaylor/huma/v2"

// envelopeVersion is bumped only on breaking envelope-shape changes.
const envelopeVersion = 1

// envelope is the versioned JSON wrapper every API response body uses.
type envelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// EnvelopeTransformer wraps every response body in the shared envelope.
// Registered as a huma transformer so typed handler outputs stay plain.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	success := len(status) > 0 && status[0] < '4'

	if apiErr, ok := v.(*APIError); ok {
		return envelope{V: envelopeVersion, Success: false, Error: apiErr, Message: apiErr.Message}, nil
	}
	if !success {
		return envelope{V: envelopeVersion, Success: false, Error: v}, nil
	}
	return envelope{V: envelopeVersion, Success: true, Data: v}, nil
}
