package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clinicore/medical-appointments/internal/apperror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeDomainError maps a service error onto the HTTP surface. Expected
// domain outcomes keep their message and field annotation; anything else is
// a 500 that logs the detail and leaks none of it.
func writeDomainError(w http.ResponseWriter, err error) {
	e := apperror.From(err)
	if e == nil {
		log.Printf("unhandled error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	resp := ErrorResponse{Error: e.Message}
	if len(e.Fields) == 1 {
		resp.Field = e.Fields[0]
	} else if len(e.Fields) > 1 {
		resp.Fields = e.Fields
	}

	switch e.Kind {
	case apperror.KindValidation:
		writeJSON(w, http.StatusBadRequest, resp)
	case apperror.KindNotFound:
		writeJSON(w, http.StatusNotFound, resp)
	case apperror.KindConflict:
		writeJSON(w, http.StatusConflict, resp)
	case apperror.KindAlreadyCancelled:
		writeJSON(w, http.StatusBadRequest, resp)
	default:
		log.Printf("storage error: %s", e.Message)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}
