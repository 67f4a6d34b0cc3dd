package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	writeError(w, ErrorResponse{
		Code:    statusCode,
		Message: message,
	}, details)
}

// WriteFieldErrorResponse reports per-field validation messages.
func WriteFieldErrorResponse(w http.ResponseWriter, statusCode int, message string, fields map[string]string) {
	writeError(w, ErrorResponse{
		Code:    statusCode,
		Message: message,
		Fields:  fields,
	}, nil)
}

func writeError(w http.ResponseWriter, resp ErrorResponse, details error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	if details != nil {
		resp.Details = details.Error()
	}
	sonic.ConfigFastest.NewEncoder(w).Encode(resp)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		sonic.ConfigDefault.NewEncoder(w).Encode(body)
	}
}
