package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"docgen/internal/document"
)

// Response is the standard JSON envelope for all API responses.
type Response struct {
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg})
}

func writeJSONBody(w http.ResponseWriter, body Response) {
	json.NewEncoder(w).Encode(body)
}

// writeFile sends a generated document as a download.
func writeFile(w http.ResponseWriter, out *document.Output) {
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(out.Data)))
	w.Header().Set("X-Document-Number", out.Number)
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}
