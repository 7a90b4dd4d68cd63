package auditing

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection/mocks"
	"github.com/rmaestri/shop-manager-api/infrastructure/repository"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewService(repository.New[*domain.AuditLogEntry](store, "auditLogs"))
}

func TestService_LogGravaEntradaComIdentidade(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	tc := tenant.Context{
		TenantID:  "loja-a",
		UserID:    "U1",
		UserName:  "Maria",
		UserEmail: "maria@loja.com",
		Role:      domain.RoleAdmin,
	}

	svc.Log(ctx, tc, domain.AuditSaleCreate, "sale", "S1", map[string]any{"total": 150.0})

	entries, err := svc.Logs(ctx, tc)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, domain.AuditSaleCreate, entry.Action)
	assert.Equal(t, "sale", entry.Entity)
	assert.Equal(t, domain.ID("S1"), entry.EntityID)
	assert.Equal(t, domain.ID("U1"), entry.UserID)
	assert.Equal(t, "Maria", entry.UserName)
	assert.Contains(t, string(entry.ID), "AUDIT-")

	_, err = time.Parse(time.RFC3339Nano, entry.Timestamp)
	assert.NoError(t, err)
}

func TestService_LogSemIdentidadeUsaFallback(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: "loja-a"}

	svc.Log(ctx, tc, domain.AuditSaleUpdate, "sale", "S1", nil)

	entries, err := svc.Logs(ctx, tc)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ID("SYSTEM"), entries[0].UserID)
	assert.Equal(t, "Guest", entries[0].UserName)
}

func TestService_LogsOrdenadosPorTimestampDecrescente(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	tc := tenant.System("loja-a")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	offset := 0
	svc.now = func() time.Time {
		offset++
		return base.Add(time.Duration(offset) * time.Second)
	}

	svc.Log(ctx, tc, "A_PRIMEIRA", "sale", "S1", nil)
	svc.Log(ctx, tc, "B_SEGUNDA", "sale", "S2", nil)
	svc.Log(ctx, tc, "C_TERCEIRA", "sale", "S3", nil)

	entries, err := svc.Logs(ctx, tc)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "C_TERCEIRA", entries[0].Action)
	assert.Equal(t, "A_PRIMEIRA", entries[2].Action)
}

func TestService_PurgeTenantRemoveApenasTrilhaDoTenant(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	svc.Log(ctx, tenant.System("loja-a"), domain.AuditSaleCreate, "sale", "S1", nil)
	svc.Log(ctx, tenant.System("loja-a"), domain.AuditSaleUpdate, "sale", "S1", nil)
	svc.Log(ctx, tenant.System("loja-b"), domain.AuditSaleCreate, "sale", "S2", nil)

	removed, err := svc.PurgeTenant(ctx, "loja-a")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := svc.Logs(ctx, tenant.System("loja-b"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entries, err = svc.Logs(ctx, tenant.System("loja-a"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_FalhaDeAuditoriaNaoPropagaEVaiParaOCanal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().
		Read(gomock.Any(), "auditLogs").
		Return(nil, int64(0), errors.New("disco indisponível"))

	svc := NewService(repository.New[*domain.AuditLogEntry](store, "auditLogs"))

	// Não propaga nem entra em pânico.
	svc.Log(context.Background(), tenant.System("loja-a"), domain.AuditSaleCreate, "sale", "S1", nil)

	select {
	case err := <-svc.Failures():
		assert.Error(t, err)
	default:
		t.Fatal("falha de auditoria deveria estar no canal de falhas")
	}
}
