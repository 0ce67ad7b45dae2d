package controllers

import (
	"net/http"

	"github.com/tolkflow/tolkflow-backend/api/responses"
	"github.com/tolkflow/tolkflow-backend/api/validators"
	"github.com/tolkflow/tolkflow-backend/internal/quotes"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// VendorQuote computes a price from a CAT analysis breakdown using the
// vendor's discount schedule.
func VendorQuote(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		vendorID, err := validators.ParseUUIDParam(r, "vendorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req quotes.QuoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteForVendor(r.Context(), vendorID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
