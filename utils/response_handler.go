package utils

import (
	"encoding/json"
	"net/http"

	"funnel-analytics/schemas"
)

func SendResponse(w http.ResponseWriter, statusCode int, message string, data any, internalErrorCode int) {
	if internalErrorCode != NO_INTERNAL_ERROR {
		writeJSON(w, statusCode, schemas.ApiResponse{
			Message: SendInternalError(internalErrorCode),
		})
		return
	}

	if message == "" && data == nil {
		w.WriteHeader(statusCode)
		return
	}

	writeJSON(w, statusCode, schemas.ApiResponse{
		Data:    data,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body schemas.ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
