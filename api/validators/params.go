package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

// ParseUUIDParam reads a chi URL parameter and parses it as a uuid.
func ParseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing url parameter").
			WithDetails(map[string]any{"field": key})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "url parameter must be a uuid").
			WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
