package storing

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

// PurgeResult enumera quantos registros cada coleção perdeu no expurgo.
type PurgeResult struct {
	Removed map[string]int `json:"removed"`
	Total   int            `json:"total"`
}

// PurgeTenantData remove todos os dados do tenant informado, em todas as
// coleções, incluindo configuração e trilha de auditoria. Exclusivo do
// master; o tenant master em si nunca é expurgado.
func (s *Service) PurgeTenantData(ctx context.Context, tc tenant.Context, tenantID string) (*PurgeResult, error) {
	if !tc.IsMaster() {
		return nil, tenant.ErrCrossTenantDenied
	}
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	if tenantID == tenant.Master {
		return nil, tenant.ErrPurgeMaster
	}

	result := &PurgeResult{Removed: map[string]int{}}

	for _, p := range s.purgers {
		removed, err := p.PurgeTenant(ctx, tenantID)
		if err != nil {
			return nil, NewStorageError(ErrPersistence, p.Name(), err.Error())
		}
		result.Removed[p.Name()] = removed
		result.Total += removed
	}

	if err := s.settings.Purge(ctx, tenantID); err != nil {
		return nil, NewStorageError(ErrPersistence, "settings", err.Error())
	}

	// A trilha do tenant vai junto. O registro TENANT_PURGE fica na trilha
	// do master, que é quem executou.
	removed, err := s.audit.PurgeTenant(ctx, tenantID)
	if err != nil {
		logrus.WithError(err).Warnf("Falha ao expurgar a trilha de auditoria do tenant %s", tenantID)
	} else {
		result.Removed["auditLogs"] = removed
		result.Total += removed
	}

	s.audit.Log(ctx, tc, domain.AuditTenantPurge, "tenant", domain.ID(tenantID), map[string]any{
		"removed": result.Total,
	})

	return result, nil
}

// ClearFinancialData zera os lançamentos financeiros do tenant do chamador.
// Vendas, cadastros e configuração ficam intactos.
func (s *Service) ClearFinancialData(ctx context.Context, tc tenant.Context) (*PurgeResult, error) {
	if tc.TenantID == "" {
		return nil, ErrTenantRequired
	}

	result := &PurgeResult{Removed: map[string]int{}}

	removed, err := s.transactions.PurgeTenant(ctx, tc.TenantID)
	if err != nil {
		return nil, NewStorageError(ErrPersistence, s.transactions.Name(), err.Error())
	}
	result.Removed[s.transactions.Name()] = removed
	result.Total += removed

	s.audit.Log(ctx, tc, domain.AuditFinancialClear, "tenant", domain.ID(tc.TenantID), map[string]any{
		"removed": result.Total,
	})

	return result, nil
}
