package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osse101/CoopTokenSim_Go/internal/logger"
	"github.com/osse101/CoopTokenSim_Go/internal/validation"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// Unknown fields are rejected so a misspelt parameter never silently falls back to a default.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req SimulateRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpSimulate); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if fields := validation.Fields(req); fields != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return fmt.Errorf("%s request failed validation", actionName)
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
//
// Example usage:
//
//	detail := GetOptionalQueryParam(r, QueryDetail, DetailFull)
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}
