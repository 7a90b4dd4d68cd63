package storing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaestri/shop-manager-api/internal/domain"
)

func TestLegacyHeuristicFindMatch(t *testing.T) {
	heuristic := LegacyHeuristic{}

	t.Run("vínculo por metadata tem precedência", func(t *testing.T) {
		sale := &domain.Sale{ID: "s1", Total: 100}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Outra coisa", FinalValue: 100},
			{ID: "t2", Description: "Sem relação", FinalValue: 100, Metadata: &domain.TransactionMetadata{SaleID: "s1"}},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
		assert.Equal(t, domain.ID("t2"), match.ID)
	})

	t.Run("legado sem metadata casa por substring na descrição", func(t *testing.T) {
		sale := &domain.Sale{ID: "s1", Total: 100}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Venda s1 - João", FinalValue: 100},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
		assert.Equal(t, domain.ID("t1"), match.ID)
	})

	t.Run("entre candidatos prefere o valor exato", func(t *testing.T) {
		sale := &domain.Sale{ID: "s1", Total: 100}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Venda s1 - sinal", FinalValue: 40},
			{ID: "t2", Description: "Venda s1 - saldo", FinalValue: 100},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
		assert.Equal(t, domain.ID("t2"), match.ID)
	})

	t.Run("tolera diferença de centavo no valor", func(t *testing.T) {
		// O candidato dentro da tolerância vem por último; se a comparação
		// de valor falhasse, o fallback devolveria o primeiro.
		sale := &domain.Sale{ID: "s1", Total: 100.00}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Venda s1 - sinal", FinalValue: 40},
			{ID: "t2", Description: "Venda s1 - saldo", FinalValue: 100.005},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
		assert.Equal(t, domain.ID("t2"), match.ID)
	})

	t.Run("sem candidato direto cai na referência de OS", func(t *testing.T) {
		sale := &domain.Sale{
			ID:    "s9",
			Total: 250,
			Items: []domain.SaleItem{{ID: "i1", Name: "Troca de tela", IsOS: true, OSID: "77"}},
		}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Recebimento OS #77 - Maria", FinalValue: 250},
			{ID: "t2", Description: "Recebimento OS #78 - Pedro", FinalValue: 250},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
		assert.Equal(t, domain.ID("t1"), match.ID)
	})

	t.Run("referência de OS também sai do nome do item", func(t *testing.T) {
		sale := &domain.Sale{
			ID:    "s9",
			Total: 250,
			Items: []domain.SaleItem{{ID: "i1", Name: "Serviço OS #42"}},
		}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Recebimento os 42 - Ana", FinalValue: 250},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
	})

	t.Run("sem valor exato cai no primeiro não estornado", func(t *testing.T) {
		sale := &domain.Sale{ID: "s1", Total: 100}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Venda s1 - sinal", FinalValue: 40},
			{ID: "t2", Description: "Venda s1 - resto", FinalValue: 55},
		}

		match := heuristic.FindMatch(sale, transactions)
		require.NotNil(t, match)
		assert.Equal(t, domain.ID("t1"), match.ID)
	})

	t.Run("lançamento já estornado nunca é reaproveitado", func(t *testing.T) {
		sale := &domain.Sale{ID: "s1", Total: 100}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Venda s1", FinalValue: 100, Status: domain.TransactionStatusRefunded},
		}

		assert.Nil(t, heuristic.FindMatch(sale, transactions))
	})

	t.Run("sem nenhum candidato devolve nil", func(t *testing.T) {
		sale := &domain.Sale{ID: "s1", Total: 100}
		transactions := []*domain.Transaction{
			{ID: "t1", Description: "Aluguel", FinalValue: 800},
		}

		assert.Nil(t, heuristic.FindMatch(sale, transactions))
	})
}
