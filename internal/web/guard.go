package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"onlinestore/internal/domain"
	"onlinestore/internal/pkg/token"
)

var errTokenExpired = errors.New("token expirado")

// DecodeClaims lê o payload do JWT sem verificar a assinatura. Serve apenas para
// decidir o que mostrar; quem autoriza de fato é a API.
func DecodeClaims(tokenString string, now time.Time) (*token.CustomClaims, error) {
	claims := &token.CustomClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil, errTokenExpired
	}
	return claims, nil
}

// RequireLogin redireciona para /login quando não há token utilizável na sessão
// ou quando a role do token não está em roles (lista vazia: qualquer role).
func (h *Handler) RequireLogin(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := h.Store.Get(c.Request, SessionName)
		tokenString, _ := session.Values[tokenKey].(string)
		if tokenString == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := DecodeClaims(tokenString, h.now())
		if err != nil {
			h.Logger.Debug("Token da sessão inutilizável; redirecionando para /login.", map[string]interface{}{"error": err.Error()})
			delete(session.Values, tokenKey)
			session.Save(c.Request, c.Writer)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			h.Logger.Debug("Role sem acesso à página.", map[string]interface{}{
				"cliente_id": claims.ClienteID,
				"role":       claims.Role,
				"path":       c.Request.URL.Path,
			})
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ctxToken, tokenString)
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

func hasRole(role string, roles []domain.Role) bool {
	for _, r := range roles {
		if string(r) == role {
			return true
		}
	}
	return false
}
