package repository

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection/mocks"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

func newFileBackedRepo(t *testing.T) *Repository[*domain.Product] {
	t.Helper()
	store, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return New[*domain.Product](store, "products")
}

func TestRepository_AddEGetAllEscopadoPorTenant(t *testing.T) {
	repo := newFileBackedRepo(t)
	ctx := context.Background()

	lojaA := tenant.System("loja-a")
	lojaB := tenant.System("loja-b")

	ok, err := repo.Add(ctx, lojaA, &domain.Product{ID: "P1", Name: "Película", Stock: 10})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Add(ctx, lojaB, &domain.Product{ID: "P2", Name: "Capinha", Stock: 5})
	require.NoError(t, err)
	assert.True(t, ok)

	// Cada tenant enxerga apenas os próprios registros.
	products, err := repo.GetAll(ctx, lojaA, false)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.ID("P1"), products[0].ID)
	assert.Equal(t, "loja-a", products[0].TenantID)

	products, err = repo.GetAll(ctx, lojaB, false)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.ID("P2"), products[0].ID)
}

func TestRepository_ConsultaGlobalApenasParaMaster(t *testing.T) {
	repo := newFileBackedRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, tenant.System("loja-a"), &domain.Product{ID: "P1", Name: "Película"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, tenant.System("loja-b"), &domain.Product{ID: "P2", Name: "Capinha"})
	require.NoError(t, err)

	all, err := repo.GetAll(ctx, tenant.System(tenant.Master), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	comum := tenant.Context{TenantID: "loja-a", Role: domain.RoleSeller}
	_, err = repo.GetAll(ctx, comum, true)
	assert.ErrorIs(t, err, tenant.ErrCrossTenantDenied)
}

func TestRepository_AddValidacaoDevolveFalseSemErro(t *testing.T) {
	repo := newFileBackedRepo(t)
	ctx := context.Background()
	tc := tenant.System("loja-a")

	// Produto sem nome falha na validação: false, sem erro.
	ok, err := repo.Add(ctx, tc, &domain.Product{ID: "P1"})
	require.NoError(t, err)
	assert.False(t, ok)

	products, err := repo.GetAll(ctx, tc, false)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRepository_UpdateForaDoEscopoEhNoOp(t *testing.T) {
	repo := newFileBackedRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, tenant.System("loja-a"), &domain.Product{ID: "P1", Name: "Película", Stock: 10})
	require.NoError(t, err)

	// Outro tenant não alcança o registro.
	ok, err := repo.Update(ctx, tenant.System("loja-b"), "P1", func(p *domain.Product) {
		p.Stock = 0
	})
	require.NoError(t, err)
	assert.False(t, ok)

	// No escopo correto a mutação é aplicada e persiste.
	ok, err = repo.Update(ctx, tenant.System("loja-a"), "P1", func(p *domain.Product) {
		p.Stock -= 3
	})
	require.NoError(t, err)
	assert.True(t, ok)

	products, err := repo.GetAll(ctx, tenant.System("loja-a"), false)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].Stock)
}

func TestRepository_DeleteIdempotente(t *testing.T) {
	repo := newFileBackedRepo(t)
	ctx := context.Background()
	tc := tenant.System("loja-a")

	_, err := repo.Add(ctx, tc, &domain.Product{ID: "P1", Name: "Película"})
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, tc, "P1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Remover de novo não é erro.
	ok, err = repo.Delete(ctx, tc, "P1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_PurgeTenantRemoveApenasOTenant(t *testing.T) {
	repo := newFileBackedRepo(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, tenant.System("loja-a"), &domain.Product{ID: "P1", Name: "Película"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, tenant.System(tenant.Master), &domain.Product{ID: "P2", Name: "Capinha"})
	require.NoError(t, err)

	removed, err := repo.PurgeTenant(ctx, "loja-a")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	remaining, err := repo.GetAll(ctx, tenant.System(tenant.Master), false)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, domain.ID("P2"), remaining[0].ID)
}

func TestRepository_IDNumericoLegadoNormalizado(t *testing.T) {
	store, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	// Coleção legada com id numérico.
	_, err = store.Replace(ctx, "products", []byte(`[{"id":1,"tenantId":"master","name":"Película","stock":10}]`), 0)
	require.NoError(t, err)

	repo := New[*domain.Product](store, "products")
	products, err := repo.GetAll(ctx, tenant.System(tenant.Master), false)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.ID("1"), products[0].ID)
}

func TestRepository_FalhaDeIOPropagaComoErro(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().
		Read(gomock.Any(), "products").
		Return(nil, int64(0), errors.New("disco indisponível")).
		Times(2)

	repo := New[*domain.Product](store, "products")
	tc := tenant.System("loja-a")

	_, err := repo.GetAll(context.Background(), tc, false)
	assert.Error(t, err)

	ok, err := repo.Add(context.Background(), tc, &domain.Product{ID: "P1", Name: "Película"})
	assert.Error(t, err)
	assert.False(t, ok)
}
