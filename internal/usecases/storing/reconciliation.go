package storing

import (
	"math"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/internal/domain"
)

// valueTolerance é a tolerância de ponto flutuante na comparação de valores.
const valueTolerance = 0.01

// osReferencePattern extrai a referência de ordem de serviço ("OS #123")
// do nome de um item de venda.
var osReferencePattern = regexp.MustCompile(`(?i)OS\s*#?\s*(\d+)`)

// Matcher localiza o lançamento financeiro correspondente a uma venda
// estornada. Isolado como estratégia para poder ser trocado por uma busca
// estrita por chave estrangeira quando os lançamentos legados sem vínculo
// tiverem sido migrados.
type Matcher interface {
	FindMatch(sale *domain.Sale, transactions []*domain.Transaction) *domain.Transaction
}

// LegacyHeuristic reconcilia por melhor esforço, na ordem:
//
//  1. candidatos com metadata.saleId igual ao id da venda, ou cuja descrição
//     contém o id da venda como substring;
//  2. sem candidatos, extrai a referência de OS dos itens e amplia a busca
//     para descrições com a mesma referência;
//  3. entre os candidatos, prefere o de finalValue igual ao total da venda
//     (tolerância de ±0,01) que ainda não esteja estornado;
//  4. sem valor exato, cai no primeiro candidato não estornado — esse
//     fallback pode casar com um lançamento de valor diferente; é um
//     comportamento legado mantido de propósito, ver DESIGN.md;
//  5. sem candidato restante, nada é alterado.
//
// Lançamentos criados por AddSale sempre carregam metadata.saleId e resolvem
// no passo 1; os passos seguintes existem só para consertar registros
// anteriores ao vínculo.
type LegacyHeuristic struct{}

func (LegacyHeuristic) FindMatch(sale *domain.Sale, transactions []*domain.Transaction) *domain.Transaction {
	saleID := sale.ID.String()

	var candidates []*domain.Transaction
	for _, txn := range transactions {
		if linked, ok := txn.LinkedSaleID(); ok && linked == sale.ID {
			candidates = append(candidates, txn)
			continue
		}
		if saleID != "" && strings.Contains(txn.Description, saleID) {
			candidates = append(candidates, txn)
		}
	}

	if len(candidates) == 0 {
		if osRef, ok := serviceOrderReference(sale); ok {
			for _, txn := range transactions {
				if ref, found := extractOSReference(txn.Description); found && ref == osRef {
					candidates = append(candidates, txn)
				}
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	// Preferência: valor exato e ainda não estornado. Um lançamento já
	// estornado nunca é reaproveitado para outra venda.
	for _, txn := range candidates {
		if txn.IsRefunded() {
			continue
		}
		if math.Abs(txn.FinalValue-sale.Total) <= valueTolerance {
			return txn
		}
	}

	for _, txn := range candidates {
		if !txn.IsRefunded() {
			logrus.WithFields(logrus.Fields{
				"sale_id":        sale.ID,
				"transaction_id": txn.ID,
				"sale_total":     sale.Total,
				"txn_value":      txn.FinalValue,
			}).Warn("Reconciliação caiu no fallback sem valor exato")
			return txn
		}
	}

	return nil
}

// serviceOrderReference devolve a referência de OS da venda, olhando primeiro
// o vínculo explícito do item e depois o padrão "OS #n" no nome.
func serviceOrderReference(sale *domain.Sale) (string, bool) {
	if osID, ok := sale.ServiceOrderID(); ok {
		return osID.String(), true
	}

	for _, item := range sale.Items {
		if ref, ok := extractOSReference(item.Name); ok {
			return ref, true
		}
	}

	return "", false
}

func extractOSReference(text string) (string, bool) {
	matches := osReferencePattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return "", false
	}
	return matches[1], true
}
