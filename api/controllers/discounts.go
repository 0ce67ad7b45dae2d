package controllers

import (
	"net/http"

	"github.com/tolkflow/tolkflow-backend/api/responses"
	"github.com/tolkflow/tolkflow-backend/api/validators"
	"github.com/tolkflow/tolkflow-backend/internal/discounts"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

func GetDefaultDiscounts(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		table, err := svc.GetDefault(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}

func UpdateDefaultDiscounts(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		var req discounts.UpdateDiscountsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.UpdateDefault(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}

func GetVendorDiscounts(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		vendorID, err := validators.ParseUUIDParam(r, "vendorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.GetForVendor(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}

func UpdateVendorDiscounts(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount service unavailable"))
			return
		}

		vendorID, err := validators.ParseUUIDParam(r, "vendorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req discounts.UpdateDiscountsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.UpdateForVendor(r.Context(), vendorID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, table)
	}
}
