package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data writes the standard success envelope used by the web frontend.
func Data(w http.ResponseWriter, status int, key string, v any) {
	JSON(w, status, map[string]any{"success": true, key: v})
}

// Message writes a success envelope carrying only a message.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"success": true, "message": msg})
}

// Error writes the standard failure envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"success": false, "message": msg})
}
