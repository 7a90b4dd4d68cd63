package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/authenticating"
)

type contextKey string

const (
	ContextKeyUser   contextKey = "user"
	ContextKeyTenant contextKey = "tenant"
)

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/login" || r.URL.Path == "/healthcheck" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// O contexto de tenant nasce aqui e viaja com a requisição;
			// nenhuma camada abaixo volta a olhar o token.
			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			ctx = context.WithValue(ctx, ContextKeyTenant, tenant.FromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantFromRequest devolve o contexto de tenant da sessão autenticada.
// Requisição sem sessão cai no contexto de convidado.
func TenantFromRequest(r *http.Request) tenant.Context {
	if tc, ok := r.Context().Value(ContextKeyTenant).(tenant.Context); ok {
		return tc
	}
	return tenant.Guest()
}

// ClaimsFromRequest devolve as claims da sessão, se houver.
func ClaimsFromRequest(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
	return claims, ok
}
