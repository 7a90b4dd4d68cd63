package domain

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis de usuário. O papel master é o único autorizado a consultas
// globais entre tenants e à exclusão de dados de tenant.
const (
	RoleMaster = "master"
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleTech   = "tech"
)

type User struct {
	ID           ID     `json:"id"`
	TenantID     string `json:"tenantId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

func (u *User) RecordID() ID                 { return u.ID }
func (u *User) RecordTenant() string         { return u.TenantID }
func (u *User) AssignTenant(tenantID string) { u.TenantID = tenantID }

func (u *User) Validate() error {
	if u.ID.IsZero() {
		return errors.New("usuário sem id")
	}
	if u.Name == "" || u.Email == "" {
		return errors.New("usuário sem nome ou email")
	}
	return nil
}

type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

func (u *User) Apply(patch UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Active != nil {
		u.Active = *patch.Active
	}
}

// Claims transporta a identidade autenticada e o tenant ativo no token JWT.
type Claims struct {
	UserID    ID     `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	TenantID  string `json:"tenantId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
