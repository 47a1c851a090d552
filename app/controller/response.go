package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"capsule-os/logging"
	"capsule-os/validation"
)

// maxBodyBytes bounds request bodies; a 500-item closet fits comfortably
const maxBodyBytes = 1 << 20

// Error codes written in the JSON error body
const (
	CodeInvalidJSON   = "INVALID_JSON"
	CodeInvalidParam  = "INVALID_PARAMETER"
	CodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON error body: {"error": "...", "code": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("❌ Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondInternalError logs the cause and writes a generic 500
func respondInternalError(w http.ResponseWriter, handler string, err error) {
	logging.Error().Err(err).Str("handler", handler).Msg("❌ Request failed")
	respondError(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

// decodeAndValidate reads a JSON body into dst and validates it, writing a 400 on failure
func decodeAndValidate(w http.ResponseWriter, r *http.Request, handler string, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		logging.Warn().Err(err).Str("handler", handler).Msg("❌ Invalid JSON body")
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, err.Error())
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		logging.Warn().Str("handler", handler).Str("error", apiErr.Message).Msg("❌ Validation failed")
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
