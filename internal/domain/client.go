package domain

import "errors"

// Categorias possíveis de um cadastro de pessoa.
const (
	ClientCategoryClient   = "client"
	ClientCategorySupplier = "supplier"
	ClientCategoryCreditor = "creditor"
	ClientCategoryTech     = "tech"
)

// Client é um cadastro de pessoa (cliente, fornecedor, credor ou técnico).
// O documento (CPF/CNPJ), quando preenchido, é único dentro do tenant.
type Client struct {
	ID       ID     `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

func (c *Client) RecordID() ID                 { return c.ID }
func (c *Client) RecordTenant() string         { return c.TenantID }
func (c *Client) AssignTenant(tenantID string) { c.TenantID = tenantID }

func (c *Client) Validate() error {
	if c.ID.IsZero() {
		return errors.New("cadastro sem id")
	}
	if c.Name == "" {
		return errors.New("cadastro sem nome")
	}
	return nil
}

type ClientPatch struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Document *string `json:"document"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
}

func (c *Client) Apply(patch ClientPatch) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	if patch.Document != nil {
		c.Document = *patch.Document
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
}
