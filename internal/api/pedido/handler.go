package pedido

import (
	"context"
	"net/http"

	"onlinestore/internal/api/response"
	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
)

// PedidoService define o contrato que o Handler espera da camada de Serviço.
type PedidoService interface {
	ListPedidos(ctx context.Context) ([]domain.Pedido, error)
	GetPedido(ctx context.Context, id int64) (domain.Pedido, error)
	CreatePedido(ctx context.Context, clienteID int64, req domain.PedidoRequest) (domain.Pedido, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Handler struct {
	Service PedidoService
	Logger  logger.Logger
}

func NewHandler(svc PedidoService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListHandler lida com GET /pedidos e GET /admin/pedidos.
// @Summary Lista os pedidos
// @Tags pedidos
// @Produce json
// @Success 200 {array} domain.Pedido
// @Router /pedidos [get]
// @Router /admin/pedidos [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	pedidos, err := h.Service.ListPedidos(r.Context())
	response.Write(w, r, h.Logger, pedidos, err, http.StatusOK)
}

// GetHandler lida com GET /pedidos/{id}.
// @Summary Busca um pedido pelo ID
// @Tags pedidos
// @Produce json
// @Param id path int true "ID do pedido"
// @Success 200 {object} domain.Pedido
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Router /pedidos/{id} [get]
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r, "id")
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	p, err := h.Service.GetPedido(r.Context(), id)
	response.Write(w, r, h.Logger, p, err, http.StatusOK)
}

// CreateHandler lida com POST /pedidos. O dono do pedido vem do token.
// @Summary Cria um pedido para o cliente autenticado
// @Tags pedidos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pedido body domain.PedidoRequest true "Endereço de entrega"
// @Success 201 {object} domain.Pedido
// @Failure 400 {object} domain.ErrorResponse "Endereço ausente ou token inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente"
// @Router /pedidos [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		response.Write(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Autorização necessária."), http.StatusCreated)
		return
	}

	var req domain.PedidoRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusCreated)
		return
	}

	p, err := h.Service.CreatePedido(r.Context(), claims.ClienteID, req)
	response.Write(w, r, h.Logger, p, err, http.StatusCreated)
}

// UpdateStatusHandler lida com PUT /admin/pedidos/{id}.
// @Summary Atualiza o status de um pedido
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do pedido"
// @Param status body domain.StatusUpdateRequest true "Novo status"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse "Status ausente"
// @Failure 403 {object} domain.ErrorResponse "Role sem permissão"
// @Failure 404 {object} domain.ErrorResponse "Pedido não encontrado"
// @Router /admin/pedidos/{id} [put]
func (h *Handler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := response.PathID(r, "id")
	if err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	var req domain.StatusUpdateRequest
	if err := response.Decode(r, &req); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		response.Write(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}
	response.Write(w, r, h.Logger, domain.MessageResponse{Message: "Status do pedido atualizado com sucesso."}, nil, http.StatusOK)
}
