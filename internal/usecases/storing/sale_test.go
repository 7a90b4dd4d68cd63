package storing

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection"
	"github.com/rmaestri/shop-manager-api/infrastructure/database/collection/mocks"
	"github.com/rmaestri/shop-manager-api/infrastructure/repository"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/auditing"
)

func auditActions(t *testing.T, svc *Service, tc tenant.Context) []string {
	t.Helper()

	logs, err := svc.GetAuditLogs(context.Background(), tc)
	require.NoError(t, err)

	actions := make([]string, 0, len(logs))
	for _, entry := range logs {
		actions = append(actions, entry.Action)
	}
	return actions
}

func TestAddSaleVendaDeBalcao(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	ok, err := svc.AddProduct(ctx, tc, &domain.Product{ID: "p1", Name: "Película", Stock: 5})
	require.NoError(t, err)
	require.True(t, ok)

	result, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:         "s1",
		Items:      []domain.SaleItem{{ID: "p1", Qty: 2, Name: "Película", Total: 50}},
		Total:      50,
		Subtotal:   50,
		Method:     "pix",
		ClientName: "João",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	t.Run("venda persistida com status open", func(t *testing.T) {
		sales, err := svc.GetSales(ctx, tc)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, domain.SaleStatusOpen, sales[0].Status)
		assert.NotEmpty(t, sales[0].Date)
	})

	t.Run("estoque baixado pela quantidade vendida", func(t *testing.T) {
		products, err := svc.GetProducts(ctx, tc)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 3, products[0].Stock)
	})

	t.Run("lançamento de receita vinculado e pago", func(t *testing.T) {
		require.NotNil(t, result.Transaction)
		assert.Empty(t, result.Warning)

		transactions, err := svc.GetTransactions(ctx, tc)
		require.NoError(t, err)
		require.Len(t, transactions, 1)

		txn := transactions[0]
		assert.Equal(t, domain.TransactionTypeRevenue, txn.Type)
		assert.True(t, txn.Paid)
		assert.Equal(t, 50.0, txn.FinalValue)
		assert.Contains(t, txn.Description, "Venda s1")

		linked, hasLink := txn.LinkedSaleID()
		require.True(t, hasLink)
		assert.Equal(t, domain.ID("s1"), linked)
	})

	t.Run("trilha registra criação, baixa e lançamento", func(t *testing.T) {
		actions := auditActions(t, svc, tc)
		assert.Contains(t, actions, domain.AuditSaleCreate)
		assert.Contains(t, actions, domain.AuditStockDeduct)
		assert.Contains(t, actions, domain.AuditTransactionCreate)
	})
}

func TestAddSaleEstoquePodeFicarNegativo(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	ok, err := svc.AddProduct(ctx, tc, &domain.Product{ID: "p1", Name: "Capinha", Stock: 1})
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.AddSale(ctx, tc, &domain.Sale{
		ID:    "s1",
		Items: []domain.SaleItem{{ID: "p1", Qty: 3, Name: "Capinha", Total: 30}},
		Total: 30,
	})
	require.NoError(t, err)

	products, err := svc.GetProducts(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, -2, products[0].Stock)
}

func TestAddSaleItemSemProduto(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	// Item aponta para produto inexistente: a venda e o lançamento seguem,
	// só a baixa daquele item é pulada.
	result, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:    "s1",
		Items: []domain.SaleItem{{ID: "fantasma", Qty: 1, Name: "Serviço avulso", Total: 80}},
		Total: 80,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)

	actions := auditActions(t, svc, tc)
	assert.NotContains(t, actions, domain.AuditStockDeduct)
	assert.Contains(t, actions, domain.AuditTransactionCreate)
}

func TestAddSaleOrcamento(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	ok, err := svc.AddProduct(ctx, tc, &domain.Product{ID: "p1", Name: "Bateria", Stock: 4})
	require.NoError(t, err)
	require.True(t, ok)

	result, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:     "q1",
		Status: domain.SaleStatusQuote,
		Items:  []domain.SaleItem{{ID: "p1", Qty: 2, Name: "Bateria", Total: 120}},
		Total:  120,
	})
	require.NoError(t, err)

	t.Run("orçamento não baixa estoque nem lança receita", func(t *testing.T) {
		assert.Nil(t, result.Transaction)

		products, err := svc.GetProducts(ctx, tc)
		require.NoError(t, err)
		assert.Equal(t, 4, products[0].Stock)

		transactions, err := svc.GetTransactions(ctx, tc)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("trilha registra apenas o orçamento", func(t *testing.T) {
		actions := auditActions(t, svc, tc)
		assert.Equal(t, []string{domain.AuditQuoteCreate}, actions)
	})
}

func TestAddSaleComOrdemDeServico(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	result, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:         "s1",
		ClientName: "Maria",
		Items:      []domain.SaleItem{{ID: "os-77", Qty: 1, Name: "Troca de tela", Total: 250, IsOS: true, OSID: "77"}},
		Total:      250,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)

	assert.Equal(t, "Recebimento OS #77 - Maria", result.Transaction.Description)

	// Item de OS não é produto de estoque.
	actions := auditActions(t, svc, tc)
	assert.NotContains(t, actions, domain.AuditStockDeduct)
}

func TestAddSaleValidacao(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	t.Run("venda sem id é rejeitada", func(t *testing.T) {
		_, err := svc.AddSale(ctx, tc, &domain.Sale{Total: 10})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("data fora do formato é rejeitada", func(t *testing.T) {
		_, err := svc.AddSale(ctx, tc, &domain.Sale{
			ID:    "s-data",
			Items: []domain.SaleItem{{ID: "avulso", Qty: 1, Name: "Serviço", Total: 10}},
			Total: 10,
			Date:  "31/12/2025",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestAddSaleFalhaNoLancamentoPreservaVenda(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner, err := collection.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = inner.Close() })

	// A escrita falha apenas na coleção de lançamentos; o resto opera normal.
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Read(gomock.Any(), gomock.Any()).DoAndReturn(inner.Read).AnyTimes()
	store.EXPECT().Replace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, doc []byte, expectedVersion int64) (int64, error) {
			if name == "transactions" {
				return 0, errors.New("disco indisponível")
			}
			return inner.Replace(ctx, name, doc, expectedVersion)
		}).AnyTimes()

	svc := NewService(store, auditing.NewService(repository.New[*domain.AuditLogEntry](store, "auditLogs")))
	ctx := context.Background()
	tc := tenantContext("loja-a")

	result, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:         "s-falha",
		ClientName: "João",
		Items:      []domain.SaleItem{{ID: "avulso", Qty: 1, Name: "Serviço", Total: 40}},
		Total:      40,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	t.Run("falha do lançamento vira warning, não erro", func(t *testing.T) {
		assert.Nil(t, result.Transaction)
		assert.Contains(t, result.Warning, "s-falha")
	})

	t.Run("a venda permanece persistida", func(t *testing.T) {
		sales, err := svc.GetSales(ctx, tc)
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, domain.ID("s-falha"), sales[0].ID)
	})

	t.Run("nenhum lançamento foi gravado", func(t *testing.T) {
		transactions, err := svc.GetTransactions(ctx, tc)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})
}

func TestUpdateSaleEstorno(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	result, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:         "s1",
		ClientName: "João",
		Items:      []domain.SaleItem{{ID: "avulso", Qty: 1, Name: "Serviço", Total: 90}},
		Total:      90,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)

	refunded := domain.SaleStatusRefunded
	ok, err := svc.UpdateSale(ctx, tc, "s1", domain.SalePatch{Status: &refunded})
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("venda e lançamento ficam estornados", func(t *testing.T) {
		sales, err := svc.GetSales(ctx, tc)
		require.NoError(t, err)
		assert.Equal(t, domain.SaleStatusRefunded, sales[0].Status)

		transactions, err := svc.GetTransactions(ctx, tc)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.True(t, transactions[0].IsRefunded())
		assert.False(t, transactions[0].Paid)
	})

	t.Run("trilha registra o estorno dos dois lados", func(t *testing.T) {
		actions := auditActions(t, svc, tc)
		assert.Contains(t, actions, domain.AuditSaleRefund)
		assert.Contains(t, actions, domain.AuditTransactionRefund)
	})

	t.Run("estorno repetido não reaproveita lançamento", func(t *testing.T) {
		before, err := svc.GetTransactions(ctx, tc)
		require.NoError(t, err)

		ok, err := svc.UpdateSale(ctx, tc, "s1", domain.SalePatch{Status: &refunded})
		require.NoError(t, err)
		require.True(t, ok)

		after, err := svc.GetTransactions(ctx, tc)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestUpdateSaleSemEstorno(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	_, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:    "s1",
		Items: []domain.SaleItem{{ID: "avulso", Qty: 1, Name: "Serviço", Total: 40}},
		Total: 40,
	})
	require.NoError(t, err)

	method := "cartao"
	ok, err := svc.UpdateSale(ctx, tc, "s1", domain.SalePatch{Method: &method})
	require.NoError(t, err)
	require.True(t, ok)

	sales, err := svc.GetSales(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, "cartao", sales[0].Method)

	// Patch comum não mexe no lançamento.
	transactions, err := svc.GetTransactions(ctx, tc)
	require.NoError(t, err)
	assert.False(t, transactions[0].IsRefunded())
}

func TestUpdateSaleInexistente(t *testing.T) {
	svc := newTestService(t)

	method := "pix"
	ok, err := svc.UpdateSale(context.Background(), tenantContext("loja-a"), "nada", domain.SalePatch{Method: &method})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteSale(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tc := tenantContext("loja-a")

	_, err := svc.AddSale(ctx, tc, &domain.Sale{
		ID:    "s1",
		Items: []domain.SaleItem{{ID: "avulso", Qty: 1, Name: "Serviço", Total: 10}},
		Total: 10,
	})
	require.NoError(t, err)

	ok, err := svc.DeleteSale(ctx, tc, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	sales, err := svc.GetSales(ctx, tc)
	require.NoError(t, err)
	assert.Empty(t, sales)

	assert.Contains(t, auditActions(t, svc, tc), domain.AuditSaleDelete)

	t.Run("segunda exclusão é no-op", func(t *testing.T) {
		ok, err := svc.DeleteSale(ctx, tc, "s1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
