package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func ListProducts(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		products, err := service.GetProducts(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, products)
	}
}

func CreateProduct(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product domain.Product
		if !decodeBody(w, r, &product) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.AddProduct(r.Context(), tc, &product)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		if !ok {
			writeStorageError(w, storing.ErrMissingRequiredData)
			return
		}

		writeJSON(w, http.StatusCreated, product)
	}
}

func UpdateProduct(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.ProductPatch
		if !decodeBody(w, r, &patch) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.UpdateProduct(r.Context(), tc, domain.ID(id), patch)
		writeUpdateOutcome(w, ok, err)
	}
}

func DeleteProduct(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		ok, err := service.DeleteProduct(r.Context(), tc, domain.ID(id))
		writeUpdateOutcome(w, ok, err)
	}
}
