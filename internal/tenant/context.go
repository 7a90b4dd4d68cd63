// Package tenant define o contexto explícito de tenant que é passado como
// parâmetro em toda chamada de repositório e de orquestração. O tenant ativo
// nunca é estado global: ele nasce das claims da sessão e viaja como valor.
package tenant

import "github.com/rmaestri/shop-manager-api/internal/domain"

// Master é o tenant padrão/legado. Seus dados nunca são removidos por
// exclusão de tenant, e somente ele pode executar consultas globais.
const Master = "master"

// Context identifica o tenant ativo e a identidade que está operando.
type Context struct {
	TenantID  string
	UserID    domain.ID
	UserName  string
	UserEmail string
	Role      string
}

// FromClaims deriva o contexto de tenant das claims da sessão autenticada.
// Sessão sem tenant cai no tenant master (comportamento legado).
func FromClaims(claims *domain.Claims) Context {
	if claims == nil {
		return Guest()
	}

	tenantID := claims.TenantID
	if tenantID == "" {
		tenantID = Master
	}

	return Context{
		TenantID:  tenantID,
		UserID:    claims.UserID,
		UserName:  claims.UserName,
		UserEmail: claims.UserEmail,
		Role:      claims.Role,
	}
}

// Guest é o contexto de uma sessão não autenticada.
func Guest() Context {
	return Context{
		TenantID: Master,
		UserName: "Guest",
	}
}

// System é o contexto usado por rotinas internas (agendador de backup,
// migrações) agindo sobre um tenant específico.
func System(tenantID string) Context {
	if tenantID == "" {
		tenantID = Master
	}
	return Context{
		TenantID: tenantID,
		UserID:   "SYSTEM",
		UserName: "SYSTEM",
		Role:     domain.RoleMaster,
	}
}

// IsMaster indica se o contexto pode executar operações globais
// (consultas entre tenants, exclusão de dados de tenant).
func (c Context) IsMaster() bool {
	return c.TenantID == Master || c.Role == domain.RoleMaster
}
