package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"onlinestore/internal/domain"
)

// APIError é devolvido quando a API responde com status >= 400.
type APIError struct {
	Status   int
	Category string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Category, e.Message)
}

// Client fala com a API JSON da loja. O token, quando informado, vai no header
// Authorization como "Bearer <token>".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New cria um Client para baseURL (e.g., "http://localhost:8080").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type clientIPKey struct{}

// WithClientIP grava no contexto o IP do navegador. As chamadas feitas com esse
// contexto o repassam em X-Forwarded-For e X-Real-IP.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFrom devolve o IP gravado por WithClientIP, ou "".
func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: falha ao codificar payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: requisição inválida: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if ip := ClientIPFrom(ctx); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
		req.Header.Set("X-Real-IP", ip)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope domain.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Category = envelope.Category
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: resposta inválida de %s %s: %w", method, path, err)
	}
	return nil
}

// --- Clientes ---

func (c *Client) Register(ctx context.Context, reg domain.ClienteRegistration) (domain.Cliente, error) {
	var out domain.Cliente
	err := c.do(ctx, http.MethodPost, "/clientes/register", "", reg, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out domain.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/clientes/login", "", domain.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// --- Catálogo e pedidos ---

func (c *Client) ListProdutos(ctx context.Context) ([]domain.Produto, error) {
	var out []domain.Produto
	err := c.do(ctx, http.MethodGet, "/produtos", "", nil, &out)
	return out, err
}

func (c *Client) ListPedidos(ctx context.Context, bearer string) ([]domain.Pedido, error) {
	var out []domain.Pedido
	err := c.do(ctx, http.MethodGet, "/pedidos", bearer, nil, &out)
	return out, err
}

// --- Admin ---

func (c *Client) AdminListProdutos(ctx context.Context, bearer string) ([]domain.Produto, error) {
	var out []domain.Produto
	err := c.do(ctx, http.MethodGet, "/admin/produtos", bearer, nil, &out)
	return out, err
}

func (c *Client) CreateProduto(ctx context.Context, bearer string, in domain.ProdutoInput) (domain.Produto, error) {
	var out domain.Produto
	err := c.do(ctx, http.MethodPost, "/admin/produtos", bearer, in, &out)
	return out, err
}

func (c *Client) DeleteProduto(ctx context.Context, bearer string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/produtos/%d", id), bearer, nil, nil)
}

func (c *Client) AdminListPedidos(ctx context.Context, bearer string) ([]domain.Pedido, error) {
	var out []domain.Pedido
	err := c.do(ctx, http.MethodGet, "/admin/pedidos", bearer, nil, &out)
	return out, err
}

func (c *Client) UpdatePedidoStatus(ctx context.Context, bearer string, id int64, status string) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/pedidos/%d", id), bearer, domain.StatusUpdateRequest{Status: status}, nil)
}
