package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"

	"onlinestore/internal/domain"
	"onlinestore/internal/pkg/logger"
)

const (
	// SessionName é o nome do cookie de sessão do frontend.
	SessionName = "onlinestore-session"
	tokenKey    = "token"

	ctxToken  = "token"
	ctxClaims = "claims"

	// DefaultOrderStatus é o status enviado pelo formulário de atualização de pedidos.
	DefaultOrderStatus = "updated"
)

// API é o subconjunto do apiclient usado pelas páginas.
type API interface {
	Register(ctx context.Context, reg domain.ClienteRegistration) (domain.Cliente, error)
	Login(ctx context.Context, email, password string) (string, error)
	ListProdutos(ctx context.Context) ([]domain.Produto, error)
	ListPedidos(ctx context.Context, bearer string) ([]domain.Pedido, error)
	AdminListProdutos(ctx context.Context, bearer string) ([]domain.Produto, error)
	CreateProduto(ctx context.Context, bearer string, in domain.ProdutoInput) (domain.Produto, error)
	DeleteProduto(ctx context.Context, bearer string, id int64) error
	AdminListPedidos(ctx context.Context, bearer string) ([]domain.Pedido, error)
	UpdatePedidoStatus(ctx context.Context, bearer string, id int64, status string) error
}

// Handler agrupa as páginas do frontend.
type Handler struct {
	API    API
	Store  sessions.Store
	Logger logger.Logger
	now    func() time.Time
}

// NewHandler cria o Handler das páginas.
func NewHandler(api API, store sessions.Store, log logger.Logger) *Handler {
	return &Handler{API: api, Store: store, Logger: log, now: time.Now}
}

// NewCookieStore cria o store de sessão assinado com secret.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(time.Hour.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// --- Auxiliares ---

func (h *Handler) session(c *gin.Context) *sessions.Session {
	session, err := h.Store.Get(c.Request, SessionName)
	if err != nil {
		// Cookie adulterado ou segredo trocado: segue com uma sessão nova.
		h.Logger.Debug("Sessão inválida descartada.", map[string]interface{}{"error": err.Error()})
	}
	return session
}

func (h *Handler) redirectWithFlash(c *gin.Context, kind, msg, location string) {
	session := h.session(c)
	session.AddFlash(msg, kind)
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.Logger.Error("Erro ao salvar sessão.", err)
	}
	c.Redirect(http.StatusFound, location)
}

// render consome os flashes pendentes e renderiza a página.
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	session := h.session(c)
	if data == nil {
		data = gin.H{}
	}
	data["FlashesSuccess"] = session.Flashes("success")
	data["FlashesError"] = session.Flashes("error")
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.Logger.Error("Erro ao salvar sessão.", err)
	}

	tokenString, _ := session.Values[tokenKey].(string)
	data["IsLoggedIn"] = false
	data["IsAdmin"] = false
	if claims, err := DecodeClaims(tokenString, h.now()); err == nil {
		data["IsLoggedIn"] = true
		data["IsAdmin"] = claims.Role == string(domain.RoleAdmin)
	}

	c.HTML(status, page, data)
}

func bearer(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// --- Cadastro, login e logout ---

func (h *Handler) ShowRegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", nil)
}

func (h *Handler) ProcessRegisterForm(c *gin.Context) {
	reg := domain.ClienteRegistration{
		Nome:     c.PostForm("nome"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if _, err := h.API.Register(c.Request.Context(), reg); err != nil {
		h.Logger.Debug("Falha no cadastro.", map[string]interface{}{"error": err.Error()})
		h.redirectWithFlash(c, "error", "Falha no cadastro.", "/register")
		return
	}
	h.redirectWithFlash(c, "success", "Cadastro realizado com sucesso! Faça o login.", "/login")
}

func (h *Handler) ShowLoginPage(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", nil)
}

func (h *Handler) ProcessLoginForm(c *gin.Context) {
	tokenString, err := h.API.Login(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		h.Logger.Debug("Falha no login.", map[string]interface{}{"error": err.Error()})
		h.redirectWithFlash(c, "error", "Falha no login.", "/login")
		return
	}

	session := h.session(c)
	session.Values[tokenKey] = tokenString
	session.AddFlash("Login realizado com sucesso.", "success")
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.Logger.Error("Erro ao salvar sessão de login.", err)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/products")
}

func (h *Handler) Logout(c *gin.Context) {
	session := h.session(c)
	delete(session.Values, tokenKey)
	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		h.Logger.Error("Erro ao salvar sessão de logout.", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// --- Catálogo e pedidos ---

func (h *Handler) ShowProducts(c *gin.Context) {
	produtos, err := h.API.ListProdutos(c.Request.Context())
	if err != nil {
		h.Logger.Error("Falha ao carregar produtos.", err)
		h.render(c, http.StatusBadGateway, "products.html", gin.H{"Error": "Não foi possível carregar os produtos."})
		return
	}
	h.render(c, http.StatusOK, "products.html", gin.H{"Produtos": produtos})
}

func (h *Handler) ShowOrders(c *gin.Context) {
	pedidos, err := h.API.ListPedidos(c.Request.Context(), bearer(c))
	if err != nil {
		h.Logger.Error("Falha ao carregar pedidos.", err)
		h.render(c, http.StatusBadGateway, "orders.html", gin.H{"Error": "Não foi possível carregar os pedidos."})
		return
	}
	h.render(c, http.StatusOK, "orders.html", gin.H{"Pedidos": pedidos})
}

// --- Admin ---

func (h *Handler) ShowAdminProducts(c *gin.Context) {
	produtos, err := h.API.AdminListProdutos(c.Request.Context(), bearer(c))
	if err != nil {
		h.Logger.Error("Falha ao carregar produtos (admin).", err)
		h.render(c, http.StatusBadGateway, "admin_products.html", gin.H{"Error": "Não foi possível carregar os produtos."})
		return
	}
	h.render(c, http.StatusOK, "admin_products.html", gin.H{"Produtos": produtos})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	in, err := produtoFromForm(c)
	if err != nil {
		h.redirectWithFlash(c, "error", "Falha ao adicionar produto.", "/admin/products")
		return
	}

	if _, err := h.API.CreateProduto(c.Request.Context(), bearer(c), in); err != nil {
		h.Logger.Debug("Falha ao criar produto.", map[string]interface{}{"error": err.Error()})
		h.redirectWithFlash(c, "error", "Falha ao adicionar produto.", "/admin/products")
		return
	}
	h.redirectWithFlash(c, "success", "Produto adicionado com sucesso.", "/admin/products")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		err = h.API.DeleteProduto(c.Request.Context(), bearer(c), id)
	}
	if err != nil {
		h.Logger.Debug("Falha ao remover produto.", map[string]interface{}{"error": err.Error()})
		h.redirectWithFlash(c, "error", "Falha ao remover produto.", "/admin/products")
		return
	}
	h.redirectWithFlash(c, "success", "Produto removido com sucesso.", "/admin/products")
}

func (h *Handler) ShowAdminOrders(c *gin.Context) {
	pedidos, err := h.API.AdminListPedidos(c.Request.Context(), bearer(c))
	if err != nil {
		h.Logger.Error("Falha ao carregar pedidos (admin).", err)
		h.render(c, http.StatusBadGateway, "admin_orders.html", gin.H{"Error": "Não foi possível carregar os pedidos."})
		return
	}
	h.render(c, http.StatusOK, "admin_orders.html", gin.H{"Pedidos": pedidos, "DefaultStatus": DefaultOrderStatus})
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	status := strings.TrimSpace(c.DefaultPostForm("status", DefaultOrderStatus))
	if status == "" {
		status = DefaultOrderStatus
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		err = h.API.UpdatePedidoStatus(c.Request.Context(), bearer(c), id, status)
	}
	if err != nil {
		h.Logger.Debug("Falha ao atualizar pedido.", map[string]interface{}{"error": err.Error()})
		h.redirectWithFlash(c, "error", "Falha ao atualizar pedido.", "/admin/orders")
		return
	}
	h.redirectWithFlash(c, "success", "Pedido atualizado com sucesso.", "/admin/orders")
}

func produtoFromForm(c *gin.Context) (domain.ProdutoInput, error) {
	preco, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("preco")))
	if err != nil {
		return domain.ProdutoInput{}, err
	}
	quantidade, err := strconv.Atoi(strings.TrimSpace(c.PostForm("quantidade")))
	if err != nil {
		return domain.ProdutoInput{}, err
	}

	in := domain.ProdutoInput{
		Nome:       strings.TrimSpace(c.PostForm("nome")),
		Preco:      preco,
		Quantidade: quantidade,
	}
	if raw := strings.TrimSpace(c.PostForm("categoria_id")); raw != "" {
		categoriaID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.ProdutoInput{}, err
		}
		in.CategoriaID = &categoriaID
	}
	return in, nil
}
