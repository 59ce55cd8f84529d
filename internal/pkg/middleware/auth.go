package middleware

import (
	"context"
	"net/http"
	"strings"

	"onlinestore/internal/api/response"
	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/token"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto da requisição.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
	RequestIDKey
)

// UserClaims representa os dados do cliente extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	ClienteID int64
	Role      domain.Role
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o JWT do header Authorization e anexa as claims
// (ClienteID e Role) ao contexto da requisição.
//
// Header ausente ou vazio responde 401; token que falha na verificação
// (assinatura, algoritmo, expiração) responde 400.
func NewAuthMiddleware(tokenSvc TokenService, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				response.Write(w, r, log, nil, apperror.NewUnauthorizedError("Acesso negado. Token não fornecido."), 0)
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				response.Write(w, r, log, nil, apperror.NewInvalidTokenError("Token inválido ou expirado.", err), 0)
				return
			}

			userClaims := UserClaims{
				ClienteID: claims.ClienteID,
				Role:      domain.Role(claims.Role),
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// bearerToken remove o prefixo "Bearer " quando presente. Qualquer outro conteúdo
// é devolvido como está e falhará na validação.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 6 && strings.EqualFold(header[:6], "Bearer") {
		rest := header[6:]
		if rest == "" || rest[0] == ' ' {
			return strings.TrimSpace(rest)
		}
	}
	return header
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// PermissionMiddleware permite a passagem apenas para as roles listadas.
// Deve ser encadeado depois de NewAuthMiddleware.
func PermissionMiddleware(log logger.Logger, requiredRoles ...domain.Role) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				response.Write(w, r, log, nil, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."), 0)
				return
			}

			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debug("Acesso negado por role.", map[string]interface{}{
				"cliente_id": claims.ClienteID,
				"role":       claims.Role,
				"path":       r.URL.Path,
			})
			response.Write(w, r, log, nil, apperror.NewForbiddenError("Você não tem a permissão necessária."), 0)
		}
	}
}
