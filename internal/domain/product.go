package domain

import "errors"

// Product representa um item de estoque da loja. O estoque pode ficar
// negativo: a baixa de venda não impõe piso (limitação conhecida do fluxo).
type Product struct {
	ID        ID      `json:"id"`
	TenantID  string  `json:"tenantId"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Stock     int     `json:"stock"`
	Cost      float64 `json:"cost"`
	Retail    float64 `json:"retail"`
	Wholesale float64 `json:"wholesale"`
	Category  string  `json:"category"`
	Supplier  string  `json:"supplier"`
	MinStock  int     `json:"minStock"`
}

func (p *Product) RecordID() ID                 { return p.ID }
func (p *Product) RecordTenant() string         { return p.TenantID }
func (p *Product) AssignTenant(tenantID string) { p.TenantID = tenantID }

func (p *Product) Validate() error {
	if p.ID.IsZero() {
		return errors.New("produto sem id")
	}
	if p.Name == "" {
		return errors.New("produto sem nome")
	}
	return nil
}

// ProductPatch carrega apenas os campos a atualizar; campos nil são mantidos.
type ProductPatch struct {
	SKU       *string  `json:"sku"`
	Name      *string  `json:"name"`
	Stock     *int     `json:"stock"`
	Cost      *float64 `json:"cost"`
	Retail    *float64 `json:"retail"`
	Wholesale *float64 `json:"wholesale"`
	Category  *string  `json:"category"`
	Supplier  *string  `json:"supplier"`
	MinStock  *int     `json:"minStock"`
}

func (p *Product) Apply(patch ProductPatch) {
	if patch.SKU != nil {
		p.SKU = *patch.SKU
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}
	if patch.Retail != nil {
		p.Retail = *patch.Retail
	}
	if patch.Wholesale != nil {
		p.Wholesale = *patch.Wholesale
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Supplier != nil {
		p.Supplier = *patch.Supplier
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
}
