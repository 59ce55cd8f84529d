package cliente

import (
	"context"
	"net/http"

	"onlinestore/internal/api/response"
	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
)

// ClienteService define o contrato para as operações de registro, login e perfil.
type ClienteService interface {
	Register(ctx context.Context, reg domain.ClienteRegistration) (domain.Cliente, error)
	Login(ctx context.Context, email string, password string) (string, error)
	GetByID(ctx context.Context, id int64) (domain.Cliente, error)
}

// Handler agrupa todos os métodos de Handler do cliente.
type Handler struct {
	Service ClienteService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ClienteService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterHandler lida com a requisição POST /clientes/register.
// @Summary Registra um novo cliente
// @Description Cria um cliente, hasheia a senha com bcrypt e salva no banco de dados.
// @Tags clientes
// @Accept json
// @Produce json
// @Param registration body domain.ClienteRegistration true "Nome, email e senha"
// @Success 201 {object} domain.Cliente "Cliente criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /clientes/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.ClienteRegistration
	if err := response.Decode(r, &reg); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	c, err := h.Service.Register(r.Context(), reg)
	response.Write(w, r, h.Logger, c, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /clientes/login.
// @Summary Autentica um cliente e retorna um JWT
// @Description Recebe email/senha, verifica o hash e emite um token válido por uma hora.
// @Tags clientes
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do cliente"
// @Success 200 {object} domain.TokenResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /clientes/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	tokenString, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	response.Write(w, r, h.Logger, domain.TokenResponse{Token: tokenString}, nil, http.StatusOK)
}

// MeHandler lida com a requisição GET /clientes/me.
// @Summary Perfil do cliente autenticado
// @Tags clientes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Cliente
// @Failure 400 {object} domain.ErrorResponse "Token inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente"
// @Failure 404 {object} domain.ErrorResponse "Cliente removido"
// @Router /clientes/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Write(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Autorização necessária."), http.StatusOK)
		return
	}

	c, err := h.Service.GetByID(r.Context(), claims.ClienteID)
	response.Write(w, r, h.Logger, c, err, http.StatusOK)
}
