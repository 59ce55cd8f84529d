package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"onlinestore/internal/domain"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/web/apiclient"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"horario": func(t time.Time) string { return t.Local().Format("02/01/2006 15:04") },
}

// NewRouter monta o servidor gin das páginas.
func NewRouter(h *Handler, log logger.Logger) *gin.Engine {
	router := gin.New()
	// Sem proxies confiáveis o IP do cliente é o da conexão; cmd/web ajusta a lista.
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Error("Falha ao limpar proxies confiáveis.", err)
	}
	router.Use(gin.Recovery(), accessLog(log), forwardClientIP())

	tmpl := template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/products") })

	router.GET("/register", h.ShowRegisterPage)
	router.POST("/register", h.ProcessRegisterForm)
	router.GET("/login", h.ShowLoginPage)
	router.POST("/login", h.ProcessLoginForm)
	router.GET("/logout", h.Logout)

	router.GET("/products", h.ShowProducts)
	router.GET("/orders", h.RequireLogin(), h.ShowOrders)

	admin := router.Group("/admin", h.RequireLogin(domain.RoleAdmin))
	{
		admin.GET("/products", h.ShowAdminProducts)
		admin.POST("/products", h.CreateProduct)
		admin.POST("/products/:id/delete", h.DeleteProduct)
		admin.GET("/orders", h.ShowAdminOrders)
		admin.POST("/orders/:id/update", h.UpdateOrder)
	}

	return router
}

// forwardClientIP anexa o IP do navegador ao contexto usado nas chamadas à API.
func forwardClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := apiclient.WithClientIP(c.Request.Context(), c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func accessLog(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("Página servida", map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}
