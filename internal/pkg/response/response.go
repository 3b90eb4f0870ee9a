// internal/pkg/response/response.go
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// SuccessMessage is the fixed message carried by every successful response.
const SuccessMessage = "Operation successful!"

// UnauthorizedMessage is returned for missing or rejected credentials.
const UnauthorizedMessage = "Sorry, you are not authorized!"

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Success    bool                `json:"success"`
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Errors     []domain.FieldError `json:"errors,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// JSON writes data wrapped in a success envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    SuccessMessage,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message string, fields ...domain.FieldError) {
	write(w, status, Envelope{
		StatusCode: status,
		Message:    message,
		Errors:     fields,
		Timestamp:  time.Now().UTC(),
	})
}

// Unauthorized writes the 401 failure envelope.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, UnauthorizedMessage)
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}
