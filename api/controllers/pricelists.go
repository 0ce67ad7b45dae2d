package controllers

import (
	"net/http"

	"github.com/tolkflow/tolkflow-backend/api/responses"
	"github.com/tolkflow/tolkflow-backend/api/validators"
	"github.com/tolkflow/tolkflow-backend/internal/pricing"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// GetPriceList returns a vendor's editable price list grouped by language
// pair, with a row for every catalog skill.
func GetPriceList(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		vendorID, err := validators.ParseUUIDParam(r, "vendorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.GetPriceList(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// SubmitPriceList reconciles and applies an edited price list. Responses
// with field errors still return 200; the body carries the per-path
// messages and changed=false.
func SubmitPriceList(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		vendorID, err := validators.ParseUUIDParam(r, "vendorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req pricing.SubmitPriceListRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SubmitPriceList(r.Context(), vendorID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
