package domain

// PixBank é uma conta PIX configurada para recebimento.
type PixBank struct {
	ID     ID     `json:"id" mapstructure:"id"`
	Name   string `json:"name" mapstructure:"name"`
	Key    string `json:"key" mapstructure:"key"`
	Holder string `json:"holder" mapstructure:"holder"`
}

// TenantSettings é o registro único de configurações de um tenant. É criado
// sob demanda com os valores padrão na primeira leitura. As tags mapstructure
// permitem promover o registro legado (objeto solto, pré multi-tenant) para a
// entrada do tenant master.
type TenantSettings struct {
	TenantID        string    `json:"tenantId" mapstructure:"tenantId"`
	CompanyName     string    `json:"companyName" mapstructure:"companyName"`
	CompanyDocument string    `json:"companyDocument" mapstructure:"companyDocument"`
	CompanyPhone    string    `json:"companyPhone" mapstructure:"companyPhone"`
	CompanyAddress  string    `json:"companyAddress" mapstructure:"companyAddress"`
	Theme           string    `json:"theme" mapstructure:"theme"`
	LogoURL         string    `json:"logoUrl" mapstructure:"logoUrl"`
	PixBanks        []PixBank `json:"pixBanks" mapstructure:"pixBanks"`
}

// DefaultSettings devolve as configurações padrão de um tenant recém-criado.
func DefaultSettings(tenantID string) *TenantSettings {
	return &TenantSettings{
		TenantID: tenantID,
		Theme:    "light",
		PixBanks: []PixBank{},
	}
}
