package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON encodes v before touching the response, so an encoding failure
// still yields a 500 with a JSON body instead of a bare status line.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("json.Marshal: response body", "status", status, "error", err)

		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{
			Status:  status,
			Error:   http.StatusText(status),
			Message: "internal server error",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: msg,
	})
}
