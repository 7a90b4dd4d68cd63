package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func ListSales(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		sales, err := service.GetSales(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sales)
	}
}

// CreateSale registra a venda com seus efeitos colaterais. Uma falha no
// lançamento financeiro volta como warning no corpo, nunca como erro HTTP:
// a venda em si já está persistida.
func CreateSale(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sale domain.Sale
		if !decodeBody(w, r, &sale) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		result, err := service.AddSale(r.Context(), tc, &sale)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		body := map[string]any{
			"sale":        result.Sale,
			"transaction": result.Transaction,
		}
		if result.Warning != "" {
			body["warning"] = result.Warning
		}

		writeJSON(w, http.StatusCreated, body)
	}
}

func UpdateSale(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.SalePatch
		if !decodeBody(w, r, &patch) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.UpdateSale(r.Context(), tc, domain.ID(id), patch)
		writeUpdateOutcome(w, ok, err)
	}
}

func DeleteSale(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		ok, err := service.DeleteSale(r.Context(), tc, domain.ID(id))
		writeUpdateOutcome(w, ok, err)
	}
}

// NextOrderNumber reserva o próximo número de ordem de serviço do tenant
func NextOrderNumber(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		n, err := service.NextOrderNumber(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{"number": n})
	}
}
