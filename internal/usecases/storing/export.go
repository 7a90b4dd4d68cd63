package storing

import (
	"context"
	"time"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

// ExportTenantData monta o pacote de backup do tenant do chamador. Com
// includeAll, exclusivo do master, o pacote carrega todos os tenants.
func (s *Service) ExportTenantData(ctx context.Context, tc tenant.Context, includeAll bool) (*domain.ExportBundle, error) {
	if tc.TenantID == "" {
		return nil, ErrTenantRequired
	}
	if includeAll && !tc.IsMaster() {
		return nil, tenant.ErrCrossTenantDenied
	}

	bundle := &domain.ExportBundle{
		Metadata: domain.ExportMetadata{
			TenantID:   tc.TenantID,
			ExportedAt: time.Now().Format(time.RFC3339),
			ExportedBy: tc.UserName,
			Version:    domain.ExportVersion,
		},
	}

	var err error
	if bundle.Data.Users, err = s.users.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "users", err.Error())
	}
	bundle.Data.Users = sanitizeUsers(bundle.Data.Users)

	if bundle.Data.Products, err = s.products.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "products", err.Error())
	}
	if bundle.Data.Clients, err = s.clients.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "clients", err.Error())
	}
	if bundle.Data.Sales, err = s.sales.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "sales", err.Error())
	}
	if bundle.Data.Warranties, err = s.warranties.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "warranties", err.Error())
	}
	if bundle.Data.Checklists, err = s.checklists.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "checklists", err.Error())
	}
	if bundle.Data.Transactions, err = s.transactions.GetAll(ctx, tc, includeAll); err != nil {
		return nil, NewStorageError(ErrPersistence, "transactions", err.Error())
	}
	if bundle.Data.AuditLogs, err = s.audit.Logs(ctx, tc); err != nil {
		return nil, NewStorageError(ErrPersistence, "auditLogs", err.Error())
	}

	if includeAll {
		if bundle.Data.Settings, err = s.settings.List(ctx); err != nil {
			return nil, NewStorageError(ErrPersistence, "settings", err.Error())
		}
	} else {
		settings, err := s.settings.Get(ctx, tc.TenantID)
		if err != nil {
			return nil, NewStorageError(ErrPersistence, "settings", err.Error())
		}
		bundle.Data.Settings = []*domain.TenantSettings{settings}
	}

	s.audit.Log(ctx, tc, domain.AuditExport, "tenant", domain.ID(tc.TenantID), map[string]any{
		"includeAll": includeAll,
	})

	return bundle, nil
}
