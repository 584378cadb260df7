package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/swappool/internal/common"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondErr maps service errors onto HTTP statuses. Unknown errors are
// logged and hidden behind a generic message.
func (s *Server) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		respondError(w, http.StatusUnauthorized, "token expired")
	case errors.Is(err, common.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "invalid token")
	case errors.Is(err, common.ErrorNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrorMediaDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, common.ErrorValidation), errors.As(err, &verrs):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON body into dst and validates it. An empty body leaves
// dst at its zero value before validation.
func (s *Server) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body: %v", common.ErrorValidation, err)
	}
	return s.validate.Struct(dst)
}
