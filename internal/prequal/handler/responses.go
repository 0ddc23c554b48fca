package handler

import (
	"net/http"

	"prequal/pkg/platform/httputil"
)

// envelope is the success wire shape shared by all journey endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, envelope{Success: true, Data: data})
}
