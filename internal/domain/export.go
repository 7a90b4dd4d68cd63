package domain

// ExportVersion identifica o formato do pacote de exportação.
const ExportVersion = "2"

type ExportMetadata struct {
	TenantID   string `json:"tenantId"`
	ExportedAt string `json:"exportedAt"`
	ExportedBy string `json:"exportedBy"`
	Version    string `json:"version"`
}

type ExportData struct {
	Settings     []*TenantSettings `json:"settings"`
	Users        []*User           `json:"users"`
	Products     []*Product        `json:"products"`
	Clients      []*Client         `json:"clients"`
	Sales        []*Sale           `json:"sales"`
	Warranties   []*Warranty       `json:"warranties"`
	Checklists   []*Checklist      `json:"checklists"`
	Transactions []*Transaction    `json:"transactions"`
	AuditLogs    []*AuditLogEntry  `json:"auditLogs"`
}

// ExportBundle é o pacote completo de backup de um tenant, filtrado ao
// tenant ativo exceto em exportação global explícita do master.
type ExportBundle struct {
	Metadata ExportMetadata `json:"metadata"`
	Data     ExportData     `json:"data"`
}
