package domain

import (
	"errors"
	"fmt"
)

const (
	TransactionTypeRevenue = "revenue"
	TransactionTypeExpense = "expense"

	TransactionStatusOpen     = "open"
	TransactionStatusRefunded = "refunded"
)

// TransactionMetadata existe apenas em lançamentos criados depois que o
// vínculo direto com a venda foi introduzido. Registros antigos não o têm,
// e por isso a reconciliação mantém a busca por substring na descrição.
type TransactionMetadata struct {
	SaleID ID `json:"saleId"`
}

// Transaction é um lançamento financeiro. Lançamentos nunca são apagados
// pelo fluxo normal; estornos apenas mudam o status, preservando o valor
// para o histórico.
type Transaction struct {
	ID          ID                   `json:"id"`
	TenantID    string               `json:"tenantId"`
	Type        string               `json:"type"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Person      string               `json:"person"`
	Method      string               `json:"method"`
	Value       float64              `json:"value"`
	FinalValue  float64              `json:"finalValue"`
	DueDate     string               `json:"dueDate"`
	Paid        bool                 `json:"paid"`
	Status      string               `json:"status"`
	Metadata    *TransactionMetadata `json:"metadata,omitempty"`
}

func (t *Transaction) RecordID() ID                 { return t.ID }
func (t *Transaction) RecordTenant() string         { return t.TenantID }
func (t *Transaction) AssignTenant(tenantID string) { t.TenantID = tenantID }

func (t *Transaction) Validate() error {
	if t.ID.IsZero() {
		return errors.New("lançamento sem id")
	}
	switch t.Type {
	case TransactionTypeRevenue, TransactionTypeExpense:
		return nil
	default:
		return fmt.Errorf("tipo de lançamento inválido: %q", t.Type)
	}
}

// LinkedSaleID distingue explicitamente o lançamento vinculado do legado sem
// vínculo, em vez de depender de checagem implícita de campo ausente.
func (t *Transaction) LinkedSaleID() (ID, bool) {
	if t.Metadata == nil || t.Metadata.SaleID.IsZero() {
		return "", false
	}
	return t.Metadata.SaleID, true
}

func (t *Transaction) IsRefunded() bool {
	return t.Status == TransactionStatusRefunded
}

type TransactionPatch struct {
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Person      *string  `json:"person"`
	Method      *string  `json:"method"`
	Value       *float64 `json:"value"`
	FinalValue  *float64 `json:"finalValue"`
	DueDate     *string  `json:"dueDate"`
	Paid        *bool    `json:"paid"`
	Status      *string  `json:"status"`
}

func (t *Transaction) Apply(patch TransactionPatch) {
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Person != nil {
		t.Person = *patch.Person
	}
	if patch.Method != nil {
		t.Method = *patch.Method
	}
	if patch.Value != nil {
		t.Value = *patch.Value
	}
	if patch.FinalValue != nil {
		t.FinalValue = *patch.FinalValue
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Paid != nil {
		t.Paid = *patch.Paid
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
}
