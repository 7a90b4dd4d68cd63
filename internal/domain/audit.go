package domain

import "errors"

// Ações registradas na trilha de auditoria. Tokens livres no estilo
// ENTIDADE_VERBO; a lista abaixo cobre as ações emitidas pelo núcleo.
const (
	AuditSaleCreate        = "SALE_CREATE"
	AuditSaleUpdate        = "SALE_UPDATE"
	AuditSaleRefund        = "SALE_REFUND"
	AuditSaleDelete        = "SALE_DELETE"
	AuditQuoteCreate       = "QUOTE_CREATE"
	AuditStockDeduct       = "STOCK_DEDUCT"
	AuditTransactionCreate = "TRANSACTION_CREATE"
	AuditTransactionRefund = "TRANSACTION_REFUND"
	AuditTenantPurge       = "TENANT_PURGE"
	AuditFinancialClear    = "FINANCIAL_CLEAR"
	AuditSettingsSave      = "SETTINGS_SAVE"
	AuditExport            = "TENANT_EXPORT"
)

// AuditLogEntry é um registro imutável da trilha de auditoria: nunca é
// editado nem removido por nenhuma operação do núcleo.
type AuditLogEntry struct {
	ID        ID             `json:"id"`
	TenantID  string         `json:"tenantId"`
	Timestamp string         `json:"timestamp"`
	UserID    ID             `json:"userId"`
	UserEmail string         `json:"userEmail"`
	UserName  string         `json:"userName"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	EntityID  ID             `json:"entityId"`
	Details   map[string]any `json:"details"`
	IP        string         `json:"ip"`
}

func (e *AuditLogEntry) RecordID() ID                 { return e.ID }
func (e *AuditLogEntry) RecordTenant() string         { return e.TenantID }
func (e *AuditLogEntry) AssignTenant(tenantID string) { e.TenantID = tenantID }

func (e *AuditLogEntry) Validate() error {
	if e.ID.IsZero() {
		return errors.New("registro de auditoria sem id")
	}
	if e.Action == "" {
		return errors.New("registro de auditoria sem ação")
	}
	return nil
}
