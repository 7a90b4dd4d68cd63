package storing

import (
	"context"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

// GetSettings devolve a configuração do tenant do chamador, criando o
// registro padrão na primeira consulta.
func (s *Service) GetSettings(ctx context.Context, tc tenant.Context) (*domain.TenantSettings, error) {
	if tc.TenantID == "" {
		return nil, ErrTenantRequired
	}
	return s.settings.Get(ctx, tc.TenantID)
}

// SaveSettings substitui a configuração do tenant do chamador. O tenant do
// registro vem sempre do contexto, nunca do corpo recebido.
func (s *Service) SaveSettings(ctx context.Context, tc tenant.Context, settings *domain.TenantSettings) error {
	if tc.TenantID == "" {
		return ErrTenantRequired
	}

	if err := s.settings.Save(ctx, tc.TenantID, settings); err != nil {
		return NewStorageError(ErrPersistence, "settings", err.Error())
	}

	s.audit.Log(ctx, tc, domain.AuditSettingsSave, "settings", domain.ID(tc.TenantID), nil)
	return nil
}

// ListSettings enumera a configuração de todos os tenants. Exclusivo do
// master; é a fonte da lista de tenants para exportação e agendamentos.
func (s *Service) ListSettings(ctx context.Context, tc tenant.Context) ([]*domain.TenantSettings, error) {
	if !tc.IsMaster() {
		return nil, tenant.ErrCrossTenantDenied
	}
	return s.settings.List(ctx)
}
