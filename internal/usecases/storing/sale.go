package storing

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/pkg/utils"
)

const txnIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// AddSaleResult devolve a venda persistida e os efeitos colaterais que
// puderam ser aplicados. Warning descreve a parte não fatal que falhou: a
// venda em si nunca é desfeita por falha de lançamento financeiro.
type AddSaleResult struct {
	Sale        *domain.Sale
	Transaction *domain.Transaction
	Warning     string
}

func (s *Service) GetSales(ctx context.Context, tc tenant.Context) ([]*domain.Sale, error) {
	return s.sales.GetAll(ctx, tc, false)
}

// AddSale persiste a venda e, fora de orçamento, aplica os efeitos
// colaterais na ordem fixa: baixa de estoque por item e depois o lançamento
// de receita vinculado. Orçamentos só registram QUOTE_CREATE.
func (s *Service) AddSale(ctx context.Context, tc tenant.Context, sale *domain.Sale) (*AddSaleResult, error) {
	if sale.Status == "" {
		sale.Status = domain.SaleStatusOpen
	}
	if sale.Date == "" {
		sale.Date = utils.Today()
	} else if _, err := utils.ParseDate(sale.Date); err != nil {
		return nil, NewStorageError(ErrMissingRequiredData, "sale", "data da venda inválida")
	}

	ok, err := s.sales.Add(ctx, tc, sale)
	if err != nil {
		return nil, NewStorageError(ErrPersistence, "sale", err.Error())
	}
	if !ok {
		return nil, NewStorageError(ErrMissingRequiredData, "sale", "venda rejeitada na validação")
	}

	result := &AddSaleResult{Sale: sale}

	if sale.Status == domain.SaleStatusQuote {
		s.audit.Log(ctx, tc, domain.AuditQuoteCreate, "sale", sale.ID, map[string]any{
			"total": sale.Total,
		})
		return result, nil
	}

	s.audit.Log(ctx, tc, domain.AuditSaleCreate, "sale", sale.ID, map[string]any{
		"total":  sale.Total,
		"method": sale.Method,
		"items":  len(sale.Items),
	})

	s.deductStock(ctx, tc, sale)

	txn := s.buildSaleTransaction(sale)
	ok, err = s.transactions.Add(ctx, tc, txn)
	if err != nil || !ok {
		// Falha não fatal: a venda já está persistida e assim permanece.
		if err != nil {
			logSoftFailure("transaction", err)
		} else {
			logrus.Warnf("Lançamento da venda %s rejeitado na validação", sale.ID)
		}
		result.Warning = fmt.Sprintf("venda %s salva sem lançamento financeiro", sale.ID)
		return result, nil
	}

	result.Transaction = txn
	s.audit.Log(ctx, tc, domain.AuditTransactionCreate, "transaction", txn.ID, map[string]any{
		"saleId": sale.ID,
		"value":  txn.Value,
	})

	return result, nil
}

// deductStock baixa o estoque de cada item de produto da venda. Itens de OS
// e itens cujo produto não existe mais são ignorados. O estoque pode ficar
// negativo: vendas de balcão não esperam acerto de inventário.
func (s *Service) deductStock(ctx context.Context, tc tenant.Context, sale *domain.Sale) {
	for _, item := range sale.Items {
		if item.IsOS || item.ID.IsZero() {
			continue
		}

		qty := item.Qty
		ok, err := s.products.Update(ctx, tc, item.ID, func(p *domain.Product) {
			p.Stock -= qty
		})
		if err != nil {
			logSoftFailure("product", err)
			continue
		}
		if !ok {
			logrus.Warnf("Produto %s da venda %s não encontrado para baixa de estoque", item.ID, sale.ID)
			continue
		}

		s.audit.Log(ctx, tc, domain.AuditStockDeduct, "product", item.ID, map[string]any{
			"saleId": sale.ID,
			"qty":    qty,
		})
	}
}

func (s *Service) buildSaleTransaction(sale *domain.Sale) *domain.Transaction {
	value := utils.RoundWithTwoDecimalPlace(sale.Total)

	description := fmt.Sprintf("Venda %s - %s", sale.ID, sale.ClientName)
	if osID, ok := sale.ServiceOrderID(); ok {
		description = fmt.Sprintf("Recebimento OS #%s - %s", osID, sale.ClientName)
	}

	return &domain.Transaction{
		ID:          newTransactionID(),
		Type:        domain.TransactionTypeRevenue,
		Description: description,
		Category:    "Vendas",
		Person:      sale.ClientName,
		Method:      sale.Method,
		Value:       value,
		FinalValue:  value,
		DueDate:     utils.Today(),
		Paid:        true,
		Status:      domain.TransactionStatusOpen,
		Metadata:    &domain.TransactionMetadata{SaleID: sale.ID},
	}
}

// UpdateSale aplica o patch à venda. Transição para refunded dispara a
// reconciliação do lançamento financeiro correspondente; a ausência de
// lançamento compatível não impede o estorno da venda.
func (s *Service) UpdateSale(ctx context.Context, tc tenant.Context, id domain.ID, patch domain.SalePatch) (bool, error) {
	refunding := patch.Status != nil && *patch.Status == domain.SaleStatusRefunded

	ok, err := s.sales.Update(ctx, tc, id, func(sl *domain.Sale) {
		sl.Apply(patch)
	})
	if err != nil || !ok {
		return ok, err
	}

	if !refunding {
		s.audit.Log(ctx, tc, domain.AuditSaleUpdate, "sale", id, nil)
		return true, nil
	}

	sale, found, err := s.sales.Get(ctx, tc, id)
	if err != nil || !found {
		return true, err
	}

	s.audit.Log(ctx, tc, domain.AuditSaleRefund, "sale", id, map[string]any{
		"total": sale.Total,
	})

	s.refundLinkedTransaction(ctx, tc, sale)

	return true, nil
}

// refundLinkedTransaction localiza via heurística o lançamento da venda
// estornada e o marca como estornado. Busca sem resultado só gera aviso.
func (s *Service) refundLinkedTransaction(ctx context.Context, tc tenant.Context, sale *domain.Sale) {
	transactions, err := s.transactions.GetAll(ctx, tc, false)
	if err != nil {
		logSoftFailure("transaction", err)
		return
	}

	match := s.matcher.FindMatch(sale, transactions)
	if match == nil {
		logrus.Warnf("Nenhum lançamento compatível com a venda estornada %s", sale.ID)
		return
	}

	ok, err := s.transactions.Update(ctx, tc, match.ID, func(t *domain.Transaction) {
		t.Status = domain.TransactionStatusRefunded
		t.Paid = false
	})
	if err != nil || !ok {
		logrus.WithError(err).Warnf("Falha ao estornar o lançamento %s da venda %s", match.ID, sale.ID)
		return
	}

	s.audit.Log(ctx, tc, domain.AuditTransactionRefund, "transaction", match.ID, map[string]any{
		"saleId": sale.ID,
		"value":  match.Value,
	})
}

func (s *Service) DeleteSale(ctx context.Context, tc tenant.Context, id domain.ID) (bool, error) {
	ok, err := s.sales.Delete(ctx, tc, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.audit.Log(ctx, tc, domain.AuditSaleDelete, "sale", id, nil)
	}
	return ok, nil
}

func newTransactionID() domain.ID {
	suffix, err := gonanoid.Generate(txnIDAlphabet, 10)
	if err != nil {
		suffix = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return domain.ID("TXN-" + suffix)
}
