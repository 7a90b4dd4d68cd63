package domain

import (
	"errors"
	"fmt"
)

// Status possíveis de uma venda. Orçamentos (quote) nunca geram baixa de
// estoque nem lançamento financeiro.
const (
	SaleStatusOpen     = "open"
	SaleStatusQuote    = "quote"
	SaleStatusRefunded = "refunded"
)

// SaleItem é uma linha da venda. Itens são imutáveis após a criação.
// Itens de ordem de serviço carregam a referência da OS para que a
// reconciliação consiga localizar o lançamento financeiro por substring.
type SaleItem struct {
	ID    ID      `json:"id"`
	Qty   int     `json:"qty"`
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	IsOS  bool    `json:"isOS,omitempty"`
	OSID  ID      `json:"osId,omitempty"`
}

type Discount struct {
	Amount float64 `json:"amount"`
	Value  float64 `json:"value"`
}

type Sale struct {
	ID         ID         `json:"id"`
	TenantID   string     `json:"tenantId"`
	Items      []SaleItem `json:"items"`
	Total      float64    `json:"total"`
	Subtotal   float64    `json:"subtotal"`
	Discount   Discount   `json:"discount"`
	Method     string     `json:"method"`
	Status     string     `json:"status"`
	ClientName string     `json:"clientName"`
	SellerName string     `json:"sellerName"`
	Date       string     `json:"date"`
}

func (s *Sale) RecordID() ID                 { return s.ID }
func (s *Sale) RecordTenant() string         { return s.TenantID }
func (s *Sale) AssignTenant(tenantID string) { s.TenantID = tenantID }

func (s *Sale) Validate() error {
	if s.ID.IsZero() {
		return errors.New("venda sem id")
	}
	switch s.Status {
	case SaleStatusOpen, SaleStatusQuote, SaleStatusRefunded:
		return nil
	default:
		return fmt.Errorf("status de venda inválido: %q", s.Status)
	}
}

// ServiceOrderID devolve a referência de OS da venda, se algum item for de
// ordem de serviço.
func (s *Sale) ServiceOrderID() (ID, bool) {
	for _, item := range s.Items {
		if item.IsOS && !item.OSID.IsZero() {
			return item.OSID, true
		}
	}
	return "", false
}

// SalePatch atualiza campos avulsos da venda. Itens nunca são alterados.
type SalePatch struct {
	Status     *string   `json:"status"`
	Total      *float64  `json:"total"`
	Subtotal   *float64  `json:"subtotal"`
	Discount   *Discount `json:"discount"`
	Method     *string   `json:"method"`
	ClientName *string   `json:"clientName"`
	SellerName *string   `json:"sellerName"`
	Date       *string   `json:"date"`
}

func (s *Sale) Apply(patch SalePatch) {
	if patch.Status != nil {
		s.Status = *patch.Status
	}
	if patch.Total != nil {
		s.Total = *patch.Total
	}
	if patch.Subtotal != nil {
		s.Subtotal = *patch.Subtotal
	}
	if patch.Discount != nil {
		s.Discount = *patch.Discount
	}
	if patch.Method != nil {
		s.Method = *patch.Method
	}
	if patch.ClientName != nil {
		s.ClientName = *patch.ClientName
	}
	if patch.SellerName != nil {
		s.SellerName = *patch.SellerName
	}
	if patch.Date != nil {
		s.Date = *patch.Date
	}
}
