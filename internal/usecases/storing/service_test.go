package storing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/infrastructure/repository"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/auditing"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	audit := auditing.NewService(repository.New[*domain.AuditLogEntry](store, "auditLogs"))

	return NewService(store, audit)
}

func tenantContext(tenantID string) tenant.Context {
	return tenant.Context{
		TenantID:  tenantID,
		UserID:    "u1",
		UserName:  "Ana",
		UserEmail: "ana@loja.com",
		Role:      domain.RoleAdmin,
	}
}

func masterContext() tenant.Context {
	return tenant.Context{
		TenantID: tenant.Master,
		UserID:   "m1",
		UserName: "Root",
		Role:     domain.RoleMaster,
	}
}

func TestTenantIsolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	lojaA := tenantContext("loja-a")
	lojaB := tenantContext("loja-b")

	ok, err := svc.AddProduct(ctx, lojaA, &domain.Product{ID: "p1", Name: "Cabo USB", Stock: 10})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.AddProduct(ctx, lojaB, &domain.Product{ID: "p2", Name: "Fonte 12V", Stock: 3})
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("cada tenant enxerga apenas os próprios registros", func(t *testing.T) {
		products, err := svc.GetProducts(ctx, lojaA)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, domain.ID("p1"), products[0].ID)
	})

	t.Run("atualização cruzada de tenant é no-op", func(t *testing.T) {
		name := "Hackeado"
		ok, err := svc.UpdateProduct(ctx, lojaB, "p1", domain.ProductPatch{Name: &name})
		require.NoError(t, err)
		assert.False(t, ok)

		products, err := svc.GetProducts(ctx, lojaA)
		require.NoError(t, err)
		assert.Equal(t, "Cabo USB", products[0].Name)
	})

	t.Run("exclusão cruzada de tenant é no-op", func(t *testing.T) {
		ok, err := svc.DeleteProduct(ctx, lojaB, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestAddClientDocumentoDuplicado(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	ok, err := svc.AddClient(ctx, tc, &domain.Client{ID: "c1", Name: "João", Document: "123.456.789-00"})
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("documento repetido no mesmo tenant é rejeitado", func(t *testing.T) {
		ok, err := svc.AddClient(ctx, tc, &domain.Client{ID: "c2", Name: "José", Document: "123.456.789-00"})
		assert.False(t, ok)
		require.Error(t, err)
		assert.True(t, IsDuplicateDocument(err))
	})

	t.Run("mesmo documento em outro tenant é permitido", func(t *testing.T) {
		ok, err := svc.AddClient(ctx, tenantContext("loja-b"), &domain.Client{ID: "c3", Name: "João", Document: "123.456.789-00"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("cliente sem documento não dispara checagem", func(t *testing.T) {
		ok, err := svc.AddClient(ctx, tc, &domain.Client{ID: "c4", Name: "Maria"})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUsuarios(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	ok, err := svc.AddUser(ctx, tc, &domain.User{
		ID:           "u10",
		Name:         "Carlos",
		Email:        "carlos@loja.com",
		PasswordHash: "segredo123",
	})
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("senha é armazenada como hash bcrypt", func(t *testing.T) {
		user, found, err := svc.users.Get(ctx, tc, "u10")
		require.NoError(t, err)
		require.True(t, found)
		assert.NotEqual(t, "segredo123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("segredo123")))
	})

	t.Run("listagem nunca expõe o hash", func(t *testing.T) {
		users, err := svc.GetUsers(ctx, tc)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Empty(t, users[0].PasswordHash)
	})

	t.Run("consulta global exige master", func(t *testing.T) {
		_, err := svc.GetGlobalUsers(ctx, tc)
		assert.ErrorIs(t, err, tenant.ErrCrossTenantDenied)

		users, err := svc.GetGlobalUsers(ctx, masterContext())
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("email duplicado é rejeitado no mesmo tenant", func(t *testing.T) {
		ok, err := svc.AddUser(ctx, tc, &domain.User{ID: "u11", Name: "Outro", Email: "carlos@loja.com"})
		assert.False(t, ok)
		assert.True(t, IsDuplicateEmail(err))
	})

	t.Run("email duplicado é rejeitado entre tenants", func(t *testing.T) {
		ok, err := svc.AddUser(ctx, tenantContext("loja-b"), &domain.User{ID: "u12", Name: "Outro", Email: " CARLOS@loja.com "})
		assert.False(t, ok)
		assert.True(t, IsDuplicateEmail(err))
	})

	t.Run("troca de senha gera novo hash", func(t *testing.T) {
		novaSenha := "outrasenha"
		ok, err := svc.UpdateUser(ctx, tc, "u10", domain.UserPatch{Password: &novaSenha})
		require.NoError(t, err)
		require.True(t, ok)

		user, _, err := svc.users.Get(ctx, tc, "u10")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("outrasenha")))
	})
}

func TestSequencias(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	n1, err := svc.NextOrderNumber(ctx, tenantContext("loja-a"))
	require.NoError(t, err)
	n2, err := svc.NextOrderNumber(ctx, tenantContext("loja-a"))
	require.NoError(t, err)
	assert.Equal(t, n1+1, n2)

	t.Run("sequência é independente por tenant", func(t *testing.T) {
		n, err := svc.NextOrderNumber(ctx, tenantContext("loja-b"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}
