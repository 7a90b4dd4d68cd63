// Package handler expõe o núcleo de dados por HTTP. Cada handler extrai o
// contexto de tenant da sessão e delega para a orquestração; nenhuma regra
// de negócio vive aqui.
package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

// writeStorageError traduz os erros da orquestração para o envelope da API.
func writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case storing.IsDuplicateDocument(err):
		apiErrors.WriteError(w, apiErrors.ErrDuplicateDocument, err.Error(), nil)
	case storing.IsDuplicateEmail(err):
		apiErrors.WriteError(w, apiErrors.ErrUserAlreadyExists, err.Error(), nil)
	case errors.Is(err, storing.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, storing.ErrTenantRequired):
		apiErrors.WriteError(w, apiErrors.ErrTenantRequired, err.Error(), nil)
	case errors.Is(err, tenant.ErrCrossTenantDenied):
		apiErrors.WriteError(w, apiErrors.ErrCrossTenantDenied, err.Error(), nil)
	case errors.Is(err, tenant.ErrPurgeMaster):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Erro interno na operação de armazenamento")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}

// writeUpdateOutcome padroniza a resposta de operações que devolvem
// (ok, err): false sem erro significa registro fora do escopo do tenant.
func writeUpdateOutcome(w http.ResponseWriter, ok bool, err error) {
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, "Registro não encontrado", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
