package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"onlinestore/internal/api/cliente"
	"onlinestore/internal/api/pedido"
	"onlinestore/internal/api/produto"
	"onlinestore/internal/api/router"
	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/cache"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
	"onlinestore/internal/pkg/token"
	"onlinestore/internal/service/clienteservice"
	"onlinestore/internal/service/pedidoservice"
	"onlinestore/internal/service/produtoservice"
	"onlinestore/internal/web/apiclient"
)

// --- Repositórios em memória ---

type memClientes struct {
	mu   sync.Mutex
	next int64
	rows map[int64]domain.Cliente
}

func (m *memClientes) Save(_ context.Context, c domain.Cliente) (domain.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Email == c.Email {
			return domain.Cliente{}, apperror.NewConflictError("email já cadastrado")
		}
	}
	m.next++
	c.ID = m.next
	c.CreatedAt = time.Now()
	m.rows[c.ID] = c
	return c, nil
}

func (m *memClientes) FindByEmail(_ context.Context, email string) (domain.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.Email == email {
			return c, nil
		}
	}
	return domain.Cliente{}, apperror.NewNotFoundError("cliente")
}

func (m *memClientes) FindByID(_ context.Context, id int64) (domain.Cliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return domain.Cliente{}, apperror.NewNotFoundError("cliente")
	}
	return c, nil
}

type memProdutos struct {
	mu   sync.Mutex
	next int64
	rows map[int64]domain.Produto
}

func (m *memProdutos) FindAll(context.Context) ([]domain.Produto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Produto{}
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProdutos) FindByID(_ context.Context, id int64) (domain.Produto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return domain.Produto{}, apperror.NewNotFoundError("produto")
	}
	return p, nil
}

func (m *memProdutos) Save(_ context.Context, p domain.Produto) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ID = m.next
	m.rows[p.ID] = p
	return p.ID, nil
}

func (m *memProdutos) Update(_ context.Context, p domain.Produto) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return 0, nil
	}
	m.rows[p.ID] = p
	return 1, nil
}

func (m *memProdutos) Delete(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

type memPedidos struct {
	mu   sync.Mutex
	next int64
	rows map[int64]domain.Pedido
}

func (m *memPedidos) FindAll(context.Context) ([]domain.Pedido, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Pedido{}
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memPedidos) FindByID(_ context.Context, id int64) (domain.Pedido, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return domain.Pedido{}, apperror.NewNotFoundError("pedido")
	}
	return p, nil
}

func (m *memPedidos) Save(_ context.Context, p domain.Pedido) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	p.ID = m.next
	m.rows[p.ID] = p
	return p.ID, nil
}

func (m *memPedidos) UpdateStatus(_ context.Context, id int64, status string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	p.Status = status
	m.rows[id] = p
	return 1, nil
}

// --- Montagem ---

type testApp struct {
	handler  http.Handler
	clientes *clienteservice.Service
	pedidos  *memPedidos
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.NewNopLogger()
	tokens := token.NewService("segredo-router", time.Hour)

	clienteRepo := &memClientes{rows: map[int64]domain.Cliente{}}
	produtoRepo := &memProdutos{rows: map[int64]domain.Produto{}}
	pedidoRepo := &memPedidos{rows: map[int64]domain.Pedido{}}

	clienteSvc := clienteservice.NewService(clienteRepo, tokens, log).WithHashCost(bcrypt.MinCost)

	h := router.NewRouter(router.Dependencies{
		ClienteHandler:       cliente.NewHandler(clienteSvc, log),
		ProdutoHandler:       produto.NewHandler(produtoservice.NewService(produtoRepo, log), log),
		PedidoHandler:        pedido.NewHandler(pedidoservice.NewService(pedidoRepo, log), log),
		TokenService:         tokens,
		Cache:                cache.NewMemoryClient(),
		Logger:               log,
		RateLimitMaxRequests: 0,
		RateLimitPeriod:      time.Minute,
	})

	return &testApp{handler: h, clientes: clienteSvc, pedidos: pedidoRepo}
}

func (a *testApp) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/clientes/login", "", domain.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok domain.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))
	return tok.Token
}

func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	_, err := a.clientes.RegisterWithRole(context.Background(),
		domain.ClienteRegistration{Nome: "Admin", Email: "admin@example.com", Password: "admin123"}, domain.RoleAdmin)
	require.NoError(t, err)
	return a.login(t, "admin@example.com", "admin123")
}

// --- Cenários ---

func TestPing(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/clientes/register", "",
		domain.ClienteRegistration{Nome: "Maria", Email: "maria@example.com", Password: "segredo123"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "segredo123")

	tok := app.login(t, "maria@example.com", "segredo123")
	assert.Len(t, bytes.Split([]byte(tok), []byte(".")), 3)

	rec = app.do(t, http.MethodPost, "/clientes/login", "", domain.LoginRequest{Email: "maria@example.com", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/clientes/register", "",
		domain.ClienteRegistration{Nome: "Outra", Email: "maria@example.com", Password: "x"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodGet, "/clientes/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maria@example.com")
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/clientes/register", "", domain.ClienteRegistration{
		Nome: "Ana", Email: "ana@example.com", Password: strings.Repeat("x", 80),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAdminRoutesGate(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/clientes/register", "",
		domain.ClienteRegistration{Nome: "João", Email: "joao@example.com", Password: "p"})
	customer := app.login(t, "joao@example.com", "p")

	routes := []struct{ method, path string }{
		{http.MethodGet, "/admin/produtos"},
		{http.MethodGet, "/admin/produtos/1"},
		{http.MethodPost, "/admin/produtos"},
		{http.MethodPut, "/admin/produtos/1"},
		{http.MethodDelete, "/admin/produtos/1"},
		{http.MethodGet, "/admin/pedidos"},
		{http.MethodPut, "/admin/pedidos/1"},
	}

	for _, rt := range routes {
		t.Run(fmt.Sprintf("%s %s", rt.method, rt.path), func(t *testing.T) {
			assert.Equal(t, http.StatusForbidden, app.do(t, rt.method, rt.path, customer, nil).Code)
			assert.Equal(t, http.StatusUnauthorized, app.do(t, rt.method, rt.path, "", nil).Code)
			assert.Equal(t, http.StatusBadRequest, app.do(t, rt.method, rt.path, "nao-e-um-jwt", nil).Code)
		})
	}
}

func TestProdutoLifecycle(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	rec := app.do(t, http.MethodPost, "/admin/produtos", admin,
		map[string]interface{}{"nome": "Caneca", "preco": "19.90", "quantidade": 10})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.Produto
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	var listed []domain.Produto
	rec = app.do(t, http.MethodGet, "/produtos", "", nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	path := fmt.Sprintf("/admin/produtos/%d", created.ID)
	rec = app.do(t, http.MethodPut, path, admin, map[string]interface{}{"nome": "Caneca Azul", "preco": "21.00", "quantidade": 8})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/produtos/%d", created.ID), "", nil)
	assert.Contains(t, rec.Body.String(), "Caneca Azul")

	rec = app.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/admin/produtos", admin, nil)
	assert.JSONEq(t, "[]", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, fmt.Sprintf("/produtos/%d", created.ID), "", nil).Code)
}

func TestPedidoStatusUpdate(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)

	for i := 0; i < 5; i++ {
		_, err := app.pedidos.Save(context.Background(), domain.Pedido{ClienteID: 1, Endereco: "Rua A", Status: domain.StatusPending})
		require.NoError(t, err)
	}

	rec := app.do(t, http.MethodPut, "/admin/pedidos/5", admin, domain.StatusUpdateRequest{Status: "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/pedidos/5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Pedido
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, "shipped", p.Status)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodPut, "/admin/pedidos/99", admin, domain.StatusUpdateRequest{Status: "x"}).Code)
}

func TestCreatePedidoRequiresToken(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/clientes/register", "",
		domain.ClienteRegistration{Nome: "Ana", Email: "ana@example.com", Password: "p"})
	tok := app.login(t, "ana@example.com", "p")

	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodPost, "/pedidos", "", domain.PedidoRequest{Endereco: "Rua B"}).Code)

	rec := app.do(t, http.MethodPost, "/pedidos", tok, domain.PedidoRequest{Endereco: "Rua B"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.Pedido
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, domain.StatusPending, p.Status)
	assert.Equal(t, int64(1), p.ClienteID)
}

func TestRepeatedReadsAreIdempotent(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken(t)
	app.do(t, http.MethodPost, "/admin/produtos", admin, map[string]interface{}{"nome": "Livro", "preco": "49.90", "quantidade": 1})

	first := app.do(t, http.MethodGet, "/produtos", "", nil).Body.String()
	second := app.do(t, http.MethodGet, "/produtos", "", nil).Body.String()
	assert.Equal(t, first, second)
}

func TestRateLimitApplied(t *testing.T) {
	log := logger.NewNopLogger()
	h := router.NewRouter(router.Dependencies{
		ClienteHandler:       cliente.NewHandler(nil, log),
		ProdutoHandler:       produto.NewHandler(nil, log),
		PedidoHandler:        pedido.NewHandler(nil, log),
		TokenService:         token.NewService("x", time.Hour),
		Cache:                cache.NewMemoryClient(),
		Logger:               log,
		RateLimitMaxRequests: 1,
		RateLimitPeriod:      time.Minute,
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func newRateLimitedRouter(t *testing.T, limit int, trusted ...string) http.Handler {
	t.Helper()
	proxies, err := middleware.ParseTrustedProxies(trusted)
	require.NoError(t, err)

	log := logger.NewNopLogger()
	produtoRepo := &memProdutos{rows: map[int64]domain.Produto{}}
	return router.NewRouter(router.Dependencies{
		ClienteHandler:       cliente.NewHandler(nil, log),
		ProdutoHandler:       produto.NewHandler(produtoservice.NewService(produtoRepo, log), log),
		PedidoHandler:        pedido.NewHandler(nil, log),
		TokenService:         token.NewService("x", time.Hour),
		Cache:                cache.NewMemoryClient(),
		Logger:               log,
		RateLimitMaxRequests: limit,
		RateLimitPeriod:      time.Minute,
		TrustedProxies:       proxies,
	})
}

func TestRateLimitSeparatesUsersBehindFrontend(t *testing.T) {
	h := newRateLimitedRouter(t, 2, "10.0.0.5")

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.5:40000"
		req.Header.Set(middleware.ForwardedForHeader, forwardedFor)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2"))
	assert.Equal(t, http.StatusOK, send("3.3.3.3"))

	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2"))
}

func TestRateLimitWithWebClientForwardingIP(t *testing.T) {
	srv := httptest.NewServer(newRateLimitedRouter(t, 1, "127.0.0.1", "::1"))
	defer srv.Close()

	api := apiclient.New(srv.URL, time.Second)
	ana := apiclient.WithClientIP(context.Background(), "198.51.100.1")
	bia := apiclient.WithClientIP(context.Background(), "198.51.100.2")

	_, err := api.ListProdutos(ana)
	require.NoError(t, err)
	_, err = api.ListProdutos(bia)
	require.NoError(t, err)

	_, err = api.ListProdutos(ana)
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}
