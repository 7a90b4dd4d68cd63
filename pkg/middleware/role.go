package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos papéis.
// allowedRoles é a lista de papéis que têm permissão para acessar a rota.
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Obter claims do usuário do contexto
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)

			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			// Verificar se o papel do usuário está na lista permitida
			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.Role == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para usuário ID=%s, Role=%s", userClaims.UserID, userClaims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			// Se tiver permissão, continua para o próximo handler
			next.ServeHTTP(w, r)
		})
	}
}

// MasterOnly permite acesso apenas ao papel master: operações globais entre
// tenants (expurgo, exportação global, listagem de tenants).
func MasterOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleMaster})
}

// AdminOnly permite acesso para master e administradores do tenant
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleMaster, domain.RoleAdmin})
}

// AllRoles permite acesso para qualquer sessão autenticada
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleMaster, domain.RoleAdmin, domain.RoleSeller, domain.RoleTech})
}
