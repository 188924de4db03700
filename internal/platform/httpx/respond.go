package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON shape every API route responds with.
type Envelope struct {
	StatusCode   int    `json:"statusCode"`
	Message      string `json:"message"`
	Data         any    `json:"data,omitempty"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// OK sends a success envelope.
func OK(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
		ErrorCode:  "NO",
	})
}

// Fail sends a failure envelope with a stable error code.
func Fail(w http.ResponseWriter, status int, errorCode, errorMessage string) {
	JSON(w, status, Envelope{
		StatusCode:   status,
		ErrorCode:    errorCode,
		ErrorMessage: errorMessage,
	})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
