package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "onlinestore/docs" // registra a documentação servida em /swagger/
	"onlinestore/internal/api/cliente"
	"onlinestore/internal/api/pedido"
	"onlinestore/internal/api/produto"
	"onlinestore/internal/domain"
	"onlinestore/internal/pkg/cache"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
)

// Dependencies reúne tudo que o roteador precisa, já inicializado pelo main.
type Dependencies struct {
	ClienteHandler *cliente.Handler
	ProdutoHandler *produto.Handler
	PedidoHandler  *pedido.Handler
	TokenService   middleware.TokenService
	Cache          cache.Client
	Logger         logger.Logger

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	TrustedProxies       middleware.TrustedProxies
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	authenticated := middleware.NewAuthMiddleware(deps.TokenService, deps.Logger)
	requireAdmin := middleware.PermissionMiddleware(deps.Logger, domain.RoleAdmin)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authenticated(requireAdmin(h))
	}

	// --- 1. Infraestrutura ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Clientes ---
	mux.HandleFunc("POST /clientes/register", deps.ClienteHandler.RegisterHandler)
	mux.HandleFunc("POST /clientes/login", deps.ClienteHandler.LoginHandler)
	mux.HandleFunc("GET /clientes/me", authenticated(deps.ClienteHandler.MeHandler))

	// --- 3. Produtos (leitura pública) ---
	mux.HandleFunc("GET /produtos", deps.ProdutoHandler.ListHandler)
	mux.HandleFunc("GET /produtos/{id}", deps.ProdutoHandler.GetHandler)

	// --- 4. Pedidos ---
	mux.HandleFunc("GET /pedidos", deps.PedidoHandler.ListHandler)
	mux.HandleFunc("GET /pedidos/{id}", deps.PedidoHandler.GetHandler)
	mux.HandleFunc("POST /pedidos", authenticated(deps.PedidoHandler.CreateHandler))

	// --- 5. Admin (token válido + role admin) ---
	mux.HandleFunc("GET /admin/produtos", admin(deps.ProdutoHandler.ListHandler))
	mux.HandleFunc("GET /admin/produtos/{id}", admin(deps.ProdutoHandler.GetHandler))
	mux.HandleFunc("POST /admin/produtos", admin(deps.ProdutoHandler.CreateHandler))
	mux.HandleFunc("PUT /admin/produtos/{id}", admin(deps.ProdutoHandler.UpdateHandler))
	mux.HandleFunc("DELETE /admin/produtos/{id}", admin(deps.ProdutoHandler.DeleteHandler))
	mux.HandleFunc("GET /admin/pedidos", admin(deps.PedidoHandler.ListHandler))
	mux.HandleFunc("PUT /admin/pedidos/{id}", admin(deps.PedidoHandler.UpdateStatusHandler))

	// --- 6. Middlewares globais ---
	var handler http.Handler = mux
	handler = middleware.RateLimiter(deps.Cache, deps.RateLimitMaxRequests, deps.RateLimitPeriod, deps.TrustedProxies, deps.Logger)(handler)
	handler = middleware.RequestLogger(deps.Logger)(handler)

	return handler
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
