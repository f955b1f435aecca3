package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/tgarmenliev/sofaccess-api/util"
	"github.com/tgarmenliev/sofaccess-api/util/tracing"
)

// ServerResponse is the uniform envelope every endpoint returns.
// Errors are carried as the message, never as a raw stack.
type ServerResponse struct {
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message string, status string, tc *tracing.Context) *ServerResponse {
	if err != nil {
		if tc != nil {
			log.Printf("[%s] %s: %v", tc.RequestID, message, err)
		} else {
			log.Printf("%s: %v", message, err)
		}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Println("unable to write response body", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status string, message string) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	body, marshalErr := json.Marshal(ServerResponse{Message: message, Status: status})
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, body, util.StatusCode(status))
}
