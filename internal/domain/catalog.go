package domain

import "errors"

// Entidades de catálogo: cadastros simples escopados por tenant, sem
// efeitos colaterais. Todas seguem o mesmo contrato de Record.

type Category struct {
	ID       ID     `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
}

func (c *Category) RecordID() ID                 { return c.ID }
func (c *Category) RecordTenant() string         { return c.TenantID }
func (c *Category) AssignTenant(tenantID string) { c.TenantID = tenantID }
func (c *Category) Validate() error              { return requireIDAndName(c.ID, c.Name) }

type Location struct {
	ID       ID     `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
}

func (l *Location) RecordID() ID                 { return l.ID }
func (l *Location) RecordTenant() string         { return l.TenantID }
func (l *Location) AssignTenant(tenantID string) { l.TenantID = tenantID }
func (l *Location) Validate() error              { return requireIDAndName(l.ID, l.Name) }

type PhysicalLocation struct {
	ID       ID     `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
}

func (l *PhysicalLocation) RecordID() ID                 { return l.ID }
func (l *PhysicalLocation) RecordTenant() string         { return l.TenantID }
func (l *PhysicalLocation) AssignTenant(tenantID string) { l.TenantID = tenantID }
func (l *PhysicalLocation) Validate() error              { return requireIDAndName(l.ID, l.Name) }

type Box struct {
	ID         ID     `json:"id"`
	TenantID   string `json:"tenantId"`
	Name       string `json:"name"`
	LocationID ID     `json:"locationId,omitempty"`
}

func (b *Box) RecordID() ID                 { return b.ID }
func (b *Box) RecordTenant() string         { return b.TenantID }
func (b *Box) AssignTenant(tenantID string) { b.TenantID = tenantID }
func (b *Box) Validate() error              { return requireIDAndName(b.ID, b.Name) }

type Brand struct {
	ID       ID     `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
}

func (b *Brand) RecordID() ID                 { return b.ID }
func (b *Brand) RecordTenant() string         { return b.TenantID }
func (b *Brand) AssignTenant(tenantID string) { b.TenantID = tenantID }
func (b *Brand) Validate() error              { return requireIDAndName(b.ID, b.Name) }

type Knowledge struct {
	ID       ID       `json:"id"`
	TenantID string   `json:"tenantId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags,omitempty"`
}

func (k *Knowledge) RecordID() ID                 { return k.ID }
func (k *Knowledge) RecordTenant() string         { return k.TenantID }
func (k *Knowledge) AssignTenant(tenantID string) { k.TenantID = tenantID }

func (k *Knowledge) Validate() error {
	if k.ID.IsZero() {
		return errors.New("registro sem id")
	}
	if k.Title == "" {
		return errors.New("registro sem título")
	}
	return nil
}

// Warranty e Checklist participam do pacote de exportação do tenant.

type Warranty struct {
	ID        ID     `json:"id"`
	TenantID  string `json:"tenantId"`
	SaleID    ID     `json:"saleId"`
	ItemName  string `json:"itemName"`
	ExpiresAt string `json:"expiresAt"`
	Notes     string `json:"notes,omitempty"`
}

func (w *Warranty) RecordID() ID                 { return w.ID }
func (w *Warranty) RecordTenant() string         { return w.TenantID }
func (w *Warranty) AssignTenant(tenantID string) { w.TenantID = tenantID }

func (w *Warranty) Validate() error {
	if w.ID.IsZero() {
		return errors.New("garantia sem id")
	}
	return nil
}

type Checklist struct {
	ID       ID       `json:"id"`
	TenantID string   `json:"tenantId"`
	Name     string   `json:"name"`
	Items    []string `json:"items"`
}

func (c *Checklist) RecordID() ID                 { return c.ID }
func (c *Checklist) RecordTenant() string         { return c.TenantID }
func (c *Checklist) AssignTenant(tenantID string) { c.TenantID = tenantID }
func (c *Checklist) Validate() error              { return requireIDAndName(c.ID, c.Name) }

func requireIDAndName(id ID, name string) error {
	if id.IsZero() {
		return errors.New("registro sem id")
	}
	if name == "" {
		return errors.New("registro sem nome")
	}
	return nil
}
