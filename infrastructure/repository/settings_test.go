package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
)

func newSettingsRepo(t *testing.T) (*SettingsRepository, *collection.FileStore) {
	t.Helper()
	store, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewSettingsRepository(store), store
}

func TestSettingsRepository_CriacaoPreguicosaComPadrao(t *testing.T) {
	repo, _ := newSettingsRepo(t)
	ctx := context.Background()

	settings, err := repo.Get(ctx, "loja-a")
	require.NoError(t, err)
	assert.Equal(t, "loja-a", settings.TenantID)
	assert.Equal(t, "light", settings.Theme)
	assert.Empty(t, settings.PixBanks)

	// A entrada criada na primeira leitura persiste.
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettingsRepository_SaveGetIdempotente(t *testing.T) {
	repo, _ := newSettingsRepo(t)
	ctx := context.Background()

	settings, err := repo.Get(ctx, "loja-a")
	require.NoError(t, err)

	settings.CompanyName = "Assistência Central"
	settings.PixBanks = []domain.PixBank{{ID: "PIX1", Name: "Banco X", Key: "11999990000"}}
	require.NoError(t, repo.Save(ctx, "loja-a", settings))

	// Salvar o que acabou de ser lido devolve o mesmo objeto lógico.
	reread, err := repo.Get(ctx, "loja-a")
	require.NoError(t, err)
	assert.Equal(t, settings, reread)

	require.NoError(t, repo.Save(ctx, "loja-a", reread))
	again, err := repo.Get(ctx, "loja-a")
	require.NoError(t, err)
	assert.Equal(t, reread, again)
}

func TestSettingsRepository_MigracaoDoRegistroLegado(t *testing.T) {
	repo, store := newSettingsRepo(t)
	ctx := context.Background()

	// Instalação antiga gravava um objeto solto, não um array.
	legacy := `{"companyName":"Loja do Zé","theme":"dark","pixBanks":[{"id":7,"name":"Banco Y","key":"ze@pix.com"}]}`
	_, err := store.Replace(ctx, "settings", []byte(legacy), 0)
	require.NoError(t, err)

	settings, err := repo.Get(ctx, tenant.Master)
	require.NoError(t, err)
	assert.Equal(t, tenant.Master, settings.TenantID)
	assert.Equal(t, "Loja do Zé", settings.CompanyName)
	assert.Equal(t, "dark", settings.Theme)
	require.Len(t, settings.PixBanks, 1)
	assert.Equal(t, domain.ID("7"), settings.PixBanks[0].ID)

	// A promoção acontece uma única vez: a coleção agora é um array.
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettingsRepository_PurgeRecusaMaster(t *testing.T) {
	repo, _ := newSettingsRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, tenant.Master)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Purge(ctx, tenant.Master), tenant.ErrPurgeMaster)
	assert.ErrorIs(t, repo.Purge(ctx, ""), tenant.ErrPurgeMaster)

	_, err = repo.Get(ctx, "loja-a")
	require.NoError(t, err)
	require.NoError(t, repo.Purge(ctx, "loja-a"))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, tenant.Master, all[0].TenantID)
}

func TestSequenceRepository_ContadoresPorTenant(t *testing.T) {
	store, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	repo := NewSequenceRepository(store)
	ctx := context.Background()

	lojaA := tenant.System("loja-a")
	lojaB := tenant.System("loja-b")

	n, err := repo.Next(ctx, lojaA, SequenceOrderNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Next(ctx, lojaA, SequenceOrderNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Sequências são independentes por tenant e por nome.
	n, err = repo.Next(ctx, lojaB, SequenceOrderNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Next(ctx, lojaA, SequenceClientNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	current, err := repo.Peek(ctx, lojaA, SequenceOrderNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)
}
