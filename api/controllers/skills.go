package controllers

import (
	"net/http"

	"github.com/tolkflow/tolkflow-backend/api/responses"
	"github.com/tolkflow/tolkflow-backend/internal/skills"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// ListSkills returns the priceable-service catalog.
func ListSkills(svc skills.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "skill service unavailable"))
			return
		}

		catalog, err := svc.ListDTO(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog)
	}
}
