package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/scheduler"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/log"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

// ListTenants enumera os tenants conhecidos a partir dos registros de
// configuração. Rota exclusiva do master.
func ListTenants(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		all, err := service.ListSettings(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		tenants := make([]map[string]string, 0, len(all))
		for _, settings := range all {
			tenants = append(tenants, map[string]string{
				"id":   settings.TenantID,
				"name": settings.CompanyName,
			})
		}

		writeJSON(w, http.StatusOK, tenants)
	}
}

// PurgeTenant remove todos os dados do tenant informado
func PurgeTenant(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		result, err := service.PurgeTenantData(r.Context(), tc, tenantID)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"tenant_id": tenantID,
			"removed":   result.Total,
		}).Info("Expurgo de tenant concluído")

		writeJSON(w, http.StatusOK, result)
	}
}

// ClearFinancialData zera os lançamentos financeiros do tenant da sessão
func ClearFinancialData(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		result, err := service.ClearFinancialData(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// ExportTenant devolve o pacote de backup do tenant da sessão.
// Com ?all=true, exclusivo do master, exporta todos os tenants.
func ExportTenant(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)
		includeAll := r.URL.Query().Get("all") == "true"

		bundle, err := service.ExportTenantData(r.Context(), tc, includeAll)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, bundle)
	}
}

// AuditLogs devolve a trilha de auditoria do tenant da sessão
func AuditLogs(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		logs, err := service.GetAuditLogs(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, logs)
	}
}

// BackupStatus expõe o estado do agendador de backups
func BackupStatus(backup *scheduler.BackupExportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, backup.GetStatus())
	}
}

// TriggerBackup dispara uma exportação de backups fora do agendamento
func TriggerBackup(backup *scheduler.BackupExportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backup.TriggerManualExport()
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
	}
}
